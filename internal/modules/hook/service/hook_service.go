package service

import (
	"context"
	"errors"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/domain"
	hookout "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/out"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type HookService struct {
	scheduler hookout.Scheduler
	log       hclog.Logger
}

// NewHookService takes the in-process scheduler; it may be nil when the host
// always sends its queue with the event.
func NewHookService(scheduler hookout.Scheduler, log hclog.Logger) *HookService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &HookService{scheduler: scheduler, log: log.Named("hook")}
}

func (s *HookService) Event(kind, state, oldState string) (domain.Event, error) {
	event := domain.Event{Kind: domain.Kind(kind), State: state, OldState: oldState}
	if err := event.Kind.Validate(); err != nil {
		return domain.Event{}, err
	}
	s.log.Trace("event", "kind", kind, "state", state, "old_state", oldState)
	return event, nil
}

// Queue prefers the counts sent by the host. Without them it asks the
// scheduler, and a closed collection yields an empty queue.
func (s *HookService) Queue(ctx context.Context, sent *domain.Queue) (domain.Queue, error) {
	if sent != nil {
		return *sent, nil
	}
	if s.scheduler == nil {
		return domain.Queue{}, nil
	}
	queue, err := s.scheduler.Queue(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCollection) {
			s.log.Debug("no collection open")
			return domain.Queue{}, nil
		}
		return domain.Queue{}, err
	}
	return queue, nil
}
