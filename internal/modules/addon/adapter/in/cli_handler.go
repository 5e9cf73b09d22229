package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
	addonin "github.com/addielponce/anki-progress-circle/internal/modules/addon/port/in"
)

type CLIHandler struct {
	usecase addonin.Usecase
}

func NewCLIHandler(usecase addonin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.AddonInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Menu(ctx context.Context, addonName string) (dto.MenuOutput, error) {
	return h.usecase.Menu(ctx, addonName)
}

func (h CLIHandler) Dispatch(ctx context.Context, input dto.DispatchInput) (dto.FrameOutput, error) {
	return h.usecase.Dispatch(ctx, input)
}

func (h CLIHandler) Toggle(ctx context.Context, input dto.ToggleInput) (dto.FrameOutput, error) {
	return h.usecase.Toggle(ctx, input)
}
