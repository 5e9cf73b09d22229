package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
	collectionin "github.com/addielponce/anki-progress-circle/internal/modules/collection/port/in"
)

type CLIHandler struct {
	usecase collectionin.Usecase
}

func NewCLIHandler(usecase collectionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.DeckOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Select(ctx context.Context, deckID string) (dto.DeckOutput, error) {
	return h.usecase.Select(ctx, deckID)
}

func (h CLIHandler) Current(ctx context.Context) (dto.DeckOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Next(ctx context.Context) (dto.DeckOutput, error) {
	return h.usecase.Next(ctx)
}

func (h CLIHandler) Answer(ctx context.Context) (dto.DeckOutput, error) {
	return h.usecase.Answer(ctx)
}

func (h CLIHandler) Add(ctx context.Context, count int) (dto.DeckOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Count: count})
}
