package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/dto"
	progressin "github.com/addielponce/anki-progress-circle/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Observe(ctx context.Context, groupID string, newCount, learning, review int) (dto.ProgressOutput, error) {
	return h.usecase.Observe(ctx, dto.ObserveInput{
		GroupID:       groupID,
		New:           newCount,
		Learning:      learning,
		Review:        review,
		HasCollection: true,
	})
}

func (h CLIHandler) History(ctx context.Context, groupID string, limit int) ([]dto.EpochOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{GroupID: groupID, Limit: limit})
}
