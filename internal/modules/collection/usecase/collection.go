package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
	collectionin "github.com/addielponce/anki-progress-circle/internal/modules/collection/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/collection/service"
)

type Interactor struct {
	svc *service.CollectionService
}

func NewInteractor(svc *service.CollectionService) collectionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.DeckOutput, error) {
	decks, currentID, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeckOutput, 0, len(decks))
	for _, deck := range decks {
		out = append(out, toOutput(deck, deck.ID == currentID))
	}
	return out, nil
}

func (i *Interactor) Current(ctx context.Context) (dto.DeckOutput, error) {
	return current(i.svc.Current(ctx))
}

func (i *Interactor) Select(ctx context.Context, deckID string) (dto.DeckOutput, error) {
	return current(i.svc.Select(ctx, deckID))
}

func (i *Interactor) Next(ctx context.Context) (dto.DeckOutput, error) {
	return current(i.svc.Next(ctx))
}

func (i *Interactor) Answer(ctx context.Context) (dto.DeckOutput, error) {
	return current(i.svc.Answer(ctx))
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.DeckOutput, error) {
	return current(i.svc.Add(ctx, input.Count))
}

func current(deck domain.Deck, err error) (dto.DeckOutput, error) {
	if err != nil {
		return dto.DeckOutput{}, err
	}
	return toOutput(deck, true), nil
}

func toOutput(deck domain.Deck, isCurrent bool) dto.DeckOutput {
	return dto.DeckOutput{
		ID:        deck.ID,
		Name:      deck.Name,
		New:       deck.New,
		Learning:  deck.Learning,
		Review:    deck.Review,
		Remaining: deck.Remaining(),
		Current:   isCurrent,
	}
}
