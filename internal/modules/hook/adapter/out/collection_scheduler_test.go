package out_test

import (
	"context"
	"errors"
	"testing"

	collectionoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/collection/adapter/out"
	collectiondomain "github.com/addielponce/anki-progress-circle/internal/modules/collection/domain"
	collectionservice "github.com/addielponce/anki-progress-circle/internal/modules/collection/service"
	collectionusecase "github.com/addielponce/anki-progress-circle/internal/modules/collection/usecase"
	hookoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/hook/adapter/out"
	"github.com/addielponce/anki-progress-circle/internal/modules/hook/domain"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

func TestCollectionSchedulerQueue(t *testing.T) {
	t.Parallel()
	store, err := collectionoutadapter.NewMemoryDeckStore([]collectiondomain.Deck{{ID: "7", Name: "Kana", New: 3, Learning: 1, Review: 2}}, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	scheduler := hookoutadapter.NewCollectionScheduler(collectionusecase.NewInteractor(collectionservice.NewCollectionService(store, nil)))
	queue, err := scheduler.Queue(context.Background())
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	want := domain.Queue{DeckID: "7", New: 3, Learning: 1, Review: 2, HasCollection: true}
	if queue != want {
		t.Fatalf("expected %+v, got %+v", want, queue)
	}
}

func TestCollectionSchedulerNoCollection(t *testing.T) {
	t.Parallel()
	store, err := collectionoutadapter.NewMemoryDeckStore(nil, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	scheduler := hookoutadapter.NewCollectionScheduler(collectionusecase.NewInteractor(collectionservice.NewCollectionService(store, nil)))
	if _, err := scheduler.Queue(context.Background()); !errors.Is(err, apperrors.ErrNoCollection) {
		t.Fatalf("expected no collection, got %v", err)
	}
}
