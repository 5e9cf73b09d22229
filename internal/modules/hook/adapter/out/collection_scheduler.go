package out

import (
	"context"

	collectionin "github.com/addielponce/anki-progress-circle/internal/modules/collection/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/hook/domain"
	hookout "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/out"
)

// CollectionScheduler reads due counts from the in-process collection.
type CollectionScheduler struct {
	collection collectionin.Usecase
}

func NewCollectionScheduler(collection collectionin.Usecase) hookout.Scheduler {
	return &CollectionScheduler{collection: collection}
}

func (s *CollectionScheduler) Queue(ctx context.Context) (domain.Queue, error) {
	deck, err := s.collection.Current(ctx)
	if err != nil {
		return domain.Queue{}, err
	}
	return domain.Queue{
		DeckID:        deck.ID,
		New:           deck.New,
		Learning:      deck.Learning,
		Review:        deck.Review,
		HasCollection: true,
	}, nil
}
