package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.AddonInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Menu(ctx context.Context, addonName string) (dto.MenuOutput, error)
	Dispatch(ctx context.Context, input dto.DispatchInput) (dto.FrameOutput, error)
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.FrameOutput, error)
}
