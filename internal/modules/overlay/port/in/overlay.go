package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/dto"
)

type Usecase interface {
	Render(ctx context.Context, input dto.FrameInput) (string, error)
	Page(ctx context.Context, input dto.FrameInput) (string, error)
	Toggle(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error)
	Redraw(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error)
	Show(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error)
	Hide(ctx context.Context) error
	Visible(ctx context.Context) bool
}
