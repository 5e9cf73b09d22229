package service

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/domain"
	collectionout "github.com/addielponce/anki-progress-circle/internal/modules/collection/port/out"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type CollectionService struct {
	store collectionout.DeckStore
	log   hclog.Logger
}

func NewCollectionService(store collectionout.DeckStore, log hclog.Logger) *CollectionService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &CollectionService{store: store, log: log.Named("collection")}
}

func (s *CollectionService) List(ctx context.Context) ([]domain.Deck, string, error) {
	decks, err := s.store.List(ctx)
	if err != nil {
		return nil, "", err
	}
	currentID, err := s.store.CurrentID(ctx)
	if err != nil {
		return nil, "", err
	}
	return decks, currentID, nil
}

func (s *CollectionService) Current(ctx context.Context) (domain.Deck, error) {
	currentID, err := s.store.CurrentID(ctx)
	if err != nil {
		return domain.Deck{}, err
	}
	return s.store.Get(ctx, currentID)
}

func (s *CollectionService) Select(ctx context.Context, deckID string) (domain.Deck, error) {
	deckID = strings.TrimSpace(deckID)
	if deckID == "" {
		return domain.Deck{}, fmt.Errorf("%w: deck id is required", apperrors.ErrInvalidInput)
	}
	deck, err := s.store.Get(ctx, deckID)
	if err != nil {
		return domain.Deck{}, err
	}
	if err := s.store.SetCurrent(ctx, deck.ID); err != nil {
		return domain.Deck{}, err
	}
	s.log.Debug("deck selected", "deck", deck.ID)
	return deck, nil
}

// Next selects the deck after the current one, wrapping around.
func (s *CollectionService) Next(ctx context.Context) (domain.Deck, error) {
	decks, currentID, err := s.List(ctx)
	if err != nil {
		return domain.Deck{}, err
	}
	next := 0
	for i, deck := range decks {
		if deck.ID == currentID {
			next = (i + 1) % len(decks)
			break
		}
	}
	return s.Select(ctx, decks[next].ID)
}

func (s *CollectionService) Answer(ctx context.Context) (domain.Deck, error) {
	deck, err := s.Current(ctx)
	if err != nil {
		return domain.Deck{}, err
	}
	answered, ok := deck.Answer()
	if !ok {
		return deck, nil
	}
	if err := s.store.Save(ctx, answered); err != nil {
		return domain.Deck{}, err
	}
	return answered, nil
}

func (s *CollectionService) Add(ctx context.Context, count int) (domain.Deck, error) {
	deck, err := s.Current(ctx)
	if err != nil {
		return domain.Deck{}, err
	}
	added, err := deck.Add(count)
	if err != nil {
		return domain.Deck{}, err
	}
	if err := s.store.Save(ctx, added); err != nil {
		return domain.Deck{}, err
	}
	s.log.Debug("cards added", "deck", added.ID, "count", count)
	return added, nil
}
