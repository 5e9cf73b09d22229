package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/dto"
	hookin "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/in"
)

type CLIHandler struct {
	usecase hookin.Usecase
}

func NewCLIHandler(usecase hookin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Menu(ctx context.Context) dto.MenuOutput {
	return h.usecase.Menu(ctx)
}

func (h CLIHandler) Dispatch(ctx context.Context, kind, state, oldState string) (dto.FrameOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Kind: kind, State: state, OldState: oldState})
}

func (h CLIHandler) Toggle(ctx context.Context) (dto.FrameOutput, error) {
	return h.usecase.Toggle(ctx, nil)
}

func (h CLIHandler) SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.FrameOutput, error) {
	return h.usecase.SaveSettings(ctx, input)
}
