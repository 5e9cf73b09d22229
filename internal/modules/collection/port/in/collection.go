package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DeckOutput, error)
	Current(ctx context.Context) (dto.DeckOutput, error)
	Select(ctx context.Context, deckID string) (dto.DeckOutput, error)
	Next(ctx context.Context) (dto.DeckOutput, error)
	Answer(ctx context.Context) (dto.DeckOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.DeckOutput, error)
}
