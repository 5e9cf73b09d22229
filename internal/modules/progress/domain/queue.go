package domain

import (
	"fmt"

	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

// Counts are the outstanding cards the host scheduler reports for a group.
type Counts struct {
	New      int
	Learning int
	Review   int
}

func (c Counts) Validate() error {
	if c.New < 0 || c.Learning < 0 || c.Review < 0 {
		return fmt.Errorf("%w: negative queue count", apperrors.ErrInvalidInput)
	}
	return nil
}

func (c Counts) Remaining() int {
	return c.New + c.Learning + c.Review
}

// Observation is one journal row.
type Observation struct {
	ID       string
	Snapshot Snapshot
	Counts   Counts
	At       string
}

// EpochSummary aggregates the journal rows of one epoch.
type EpochSummary struct {
	GroupID     string
	Epoch       int
	Goal        int
	BestDone    int
	LastPercent float64
	FirstSeen   string
	LastSeen    string
	Samples     int
}
