package service

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
	progressout "github.com/addielponce/anki-progress-circle/internal/modules/progress/port/out"
	"github.com/addielponce/anki-progress-circle/internal/platform/clock"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
	"github.com/addielponce/anki-progress-circle/internal/platform/id"
)

type ProgressService struct {
	tracker *domain.Tracker
	clock   clock.Clock
	idGen   id.Generator
	journal progressout.Journal
	log     hclog.Logger
}

// NewProgressService owns the tracker for the process. journal may be nil.
func NewProgressService(clock clock.Clock, idGen id.Generator, journal progressout.Journal, log hclog.Logger) *ProgressService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &ProgressService{
		tracker: domain.NewTracker(),
		clock:   clock,
		idGen:   idGen,
		journal: journal,
		log:     log.Named("progress"),
	}
}

func (s *ProgressService) Observe(ctx context.Context, groupID string, counts domain.Counts) (domain.Snapshot, error) {
	if groupID == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: group id is required", apperrors.ErrInvalidInput)
	}
	if err := counts.Validate(); err != nil {
		return domain.Snapshot{}, err
	}
	snapshot := s.tracker.Observe(groupID, counts.Remaining())
	if snapshot.Started {
		s.log.Info("goal set", "group", groupID, "goal", snapshot.Total, "epoch", snapshot.Epoch)
	} else {
		s.log.Debug("progress", "group", groupID, "done", snapshot.Done, "total", snapshot.Total)
	}
	if s.journal != nil {
		observation := domain.Observation{
			ID:       s.idGen.New(),
			Snapshot: snapshot,
			Counts:   counts,
			At:       s.clock.Now().Format(time.RFC3339),
		}
		if err := s.journal.Record(ctx, observation); err != nil {
			s.log.Warn("journal record failed", "group", groupID, "error", err)
		}
	}
	return snapshot, nil
}

func (s *ProgressService) History(ctx context.Context, groupID string, limit int) ([]domain.EpochSummary, error) {
	if s.journal == nil {
		return []domain.EpochSummary{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.journal.Epochs(ctx, groupID, limit)
}
