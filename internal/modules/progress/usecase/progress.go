package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/progress/dto"
	progressin "github.com/addielponce/anki-progress-circle/internal/modules/progress/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Observe(ctx context.Context, input dto.ObserveInput) (dto.ProgressOutput, error) {
	if !input.HasCollection {
		return toOutput(domain.Zero()), nil
	}
	snapshot, err := i.svc.Observe(ctx, input.GroupID, domain.Counts{
		New:      input.New,
		Learning: input.Learning,
		Review:   input.Review,
	})
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return toOutput(snapshot), nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.EpochOutput, error) {
	epochs, err := i.svc.History(ctx, input.GroupID, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EpochOutput, 0, len(epochs))
	for _, e := range epochs {
		out = append(out, dto.EpochOutput{
			GroupID:     e.GroupID,
			Epoch:       e.Epoch,
			Goal:        e.Goal,
			BestDone:    e.BestDone,
			LastPercent: e.LastPercent,
			FirstSeen:   e.FirstSeen,
			LastSeen:    e.LastSeen,
			Samples:     e.Samples,
		})
	}
	return out, nil
}

func toOutput(s domain.Snapshot) dto.ProgressOutput {
	return dto.ProgressOutput{
		GroupID: s.GroupID,
		Done:    s.Done,
		Total:   s.Total,
		Percent: s.Percent,
		Epoch:   s.Epoch,
		Started: s.Started,
	}
}
