package out

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/domain"
)

// DeckStore holds the open collection. Implementations return
// ErrNoCollection when no decks are loaded.
type DeckStore interface {
	List(ctx context.Context) ([]domain.Deck, error)
	Get(ctx context.Context, deckID string) (domain.Deck, error)
	Save(ctx context.Context, deck domain.Deck) error
	CurrentID(ctx context.Context) (string, error)
	SetCurrent(ctx context.Context, deckID string) error
}
