package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context, pkg string) (dto.ConfigOutput, error)
	Save(ctx context.Context, input dto.SaveInput) (dto.ConfigOutput, error)
	Set(ctx context.Context, input dto.SetInput) (dto.ConfigOutput, error)
	RestoreDefaults(ctx context.Context, pkg string) (dto.ConfigOutput, error)
}
