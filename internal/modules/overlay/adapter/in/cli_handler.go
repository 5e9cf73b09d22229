package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/dto"
	overlayin "github.com/addielponce/anki-progress-circle/internal/modules/overlay/port/in"
)

type CLIHandler struct {
	usecase overlayin.Usecase
}

func NewCLIHandler(usecase overlayin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Render returns the SVG, or the full page when page is set.
func (h CLIHandler) Render(ctx context.Context, input dto.FrameInput, page bool) (string, error) {
	if page {
		return h.usecase.Page(ctx, input)
	}
	return h.usecase.Render(ctx, input)
}
