package out

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/domain"
)

// Scheduler answers the host query for the current deck's due counts.
type Scheduler interface {
	Queue(ctx context.Context) (domain.Queue, error)
}
