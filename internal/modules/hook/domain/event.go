package domain

import (
	"fmt"
	"slices"

	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type Kind string

const (
	KindStateDidChange          Kind = "state_did_change"
	KindReviewerDidShowQuestion Kind = "reviewer_did_show_question"
	KindMainWindowDidInit       Kind = "main_window_did_init"
)

// Kinds lists the host hooks the add-on registers for.
var Kinds = []Kind{KindStateDidChange, KindReviewerDidShowQuestion, KindMainWindowDidInit}

func (k Kind) Validate() error {
	if !slices.Contains(Kinds, k) {
		return fmt.Errorf("%w: unknown event %q", apperrors.ErrInvalidInput, string(k))
	}
	return nil
}

// RefreshStates are the host screens on which a state change repaints.
var RefreshStates = []string{"deckBrowser", "overview", "review"}

type Event struct {
	Kind     Kind
	State    string
	OldState string
}

// Refreshes reports whether the event should recompute progress.
func (e Event) Refreshes() bool {
	switch e.Kind {
	case KindStateDidChange:
		return slices.Contains(RefreshStates, e.State)
	case KindReviewerDidShowQuestion:
		return true
	default:
		return false
	}
}

const (
	ActionToggle   = "toggle"
	ActionSettings = "settings"
)

type Action struct {
	ID    string
	Label string
}

type Menu struct {
	Title   string
	Actions []Action
}

// MainMenu is the entry installed under the host's Tools menu.
func MainMenu() Menu {
	return Menu{
		Title: "Circular progress ⭕",
		Actions: []Action{
			{ID: ActionToggle, Label: "Toggle circular progress"},
			{ID: ActionSettings, Label: "Settings"},
		},
	}
}

// Queue is the due counts of the host's current deck.
type Queue struct {
	DeckID        string
	New           int
	Learning      int
	Review        int
	HasCollection bool
}
