package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

// Deck carries the scheduler's due counts for one deck.
type Deck struct {
	ID       string
	Name     string
	New      int
	Learning int
	Review   int
}

func (d Deck) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: deck id is required", apperrors.ErrInvalidInput)
	}
	if d.New < 0 || d.Learning < 0 || d.Review < 0 {
		return fmt.Errorf("%w: deck %s has negative counts", apperrors.ErrInvalidInput, d.ID)
	}
	return nil
}

func (d Deck) Remaining() int {
	return d.New + d.Learning + d.Review
}

// Answer completes one outstanding card. Reviews go first, then learning,
// then new cards. It reports false when nothing is due.
func (d Deck) Answer() (Deck, bool) {
	switch {
	case d.Review > 0:
		d.Review--
	case d.Learning > 0:
		d.Learning--
	case d.New > 0:
		d.New--
	default:
		return d, false
	}
	return d, true
}

func (d Deck) Add(n int) (Deck, error) {
	if n <= 0 {
		return d, fmt.Errorf("%w: card count must be positive", apperrors.ErrInvalidInput)
	}
	d.New += n
	return d, nil
}
