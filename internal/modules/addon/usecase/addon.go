package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
	addonin "github.com/addielponce/anki-progress-circle/internal/modules/addon/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/addon/service"
)

type Interactor struct {
	svc *service.AddonService
}

func NewInteractor(svc *service.AddonService) addonin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.AddonInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Menu(ctx context.Context, addonName string) (dto.MenuOutput, error) {
	menu, err := i.svc.Menu(ctx, addonName)
	if err != nil {
		return dto.MenuOutput{}, err
	}
	return toMenu(menu), nil
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.DispatchInput) (dto.FrameOutput, error) {
	frame, err := i.svc.Dispatch(ctx, input.AddonName, domain.Event{
		Kind:     input.Kind,
		State:    input.State,
		OldState: input.OldState,
		Queue:    toQueue(input.Queue),
	})
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return toFrame(input.AddonName, frame), nil
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (dto.FrameOutput, error) {
	frame, err := i.svc.Toggle(ctx, input.AddonName, toQueue(input.Queue))
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return toFrame(input.AddonName, frame), nil
}

func toQueue(queue *dto.QueueInput) *domain.Queue {
	if queue == nil {
		return nil
	}
	return &domain.Queue{
		DeckID:        queue.DeckID,
		New:           queue.New,
		Learning:      queue.Learning,
		Review:        queue.Review,
		HasCollection: queue.HasCollection,
	}
}

func toMenu(menu domain.Menu) dto.MenuOutput {
	out := dto.MenuOutput{Title: menu.Title, Actions: make([]dto.ActionOutput, 0, len(menu.Actions))}
	for _, action := range menu.Actions {
		out.Actions = append(out.Actions, dto.ActionOutput{ID: action.ID, Label: action.Label})
	}
	return out
}

func toFrame(addonName string, frame domain.Frame) dto.FrameOutput {
	out := dto.FrameOutput{
		AddonName: addonName,
		Visible:   frame.Visible,
		Refreshed: frame.Refreshed,
		Markup:    frame.Markup,
		Done:      frame.Done,
		Total:     frame.Total,
		Percent:   frame.Percent,
	}
	if frame.Menu != nil {
		menu := toMenu(*frame.Menu)
		out.Menu = &menu
	}
	return out
}
