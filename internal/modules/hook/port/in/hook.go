package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/dto"
)

type Usecase interface {
	Metadata(ctx context.Context) dto.MetadataOutput
	Menu(ctx context.Context) dto.MenuOutput
	Dispatch(ctx context.Context, input dto.EventInput) (dto.FrameOutput, error)
	Toggle(ctx context.Context, queue *dto.QueueInput) (dto.FrameOutput, error)
	SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.FrameOutput, error)
}
