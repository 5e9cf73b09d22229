package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/dto"
)

type Usecase interface {
	Observe(ctx context.Context, input dto.ObserveInput) (dto.ProgressOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.EpochOutput, error)
}
