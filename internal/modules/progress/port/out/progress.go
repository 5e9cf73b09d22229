package out

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
)

type Journal interface {
	Record(ctx context.Context, observation domain.Observation) error
	Epochs(ctx context.Context, groupID string, limit int) ([]domain.EpochSummary, error)
}
