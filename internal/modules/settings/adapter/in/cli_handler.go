package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	settingsin "github.com/addielponce/anki-progress-circle/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
	pkg     string
}

func NewCLIHandler(usecase settingsin.Usecase, pkg string) CLIHandler {
	return CLIHandler{usecase: usecase, pkg: pkg}
}

func (h CLIHandler) Show(ctx context.Context) (dto.ConfigOutput, error) {
	return h.usecase.Get(ctx, h.pkg)
}

func (h CLIHandler) Set(ctx context.Context, key, value string) (dto.ConfigOutput, error) {
	return h.usecase.Set(ctx, dto.SetInput{Package: h.pkg, Key: key, Value: value})
}

func (h CLIHandler) Reset(ctx context.Context) (dto.ConfigOutput, error) {
	return h.usecase.RestoreDefaults(ctx, h.pkg)
}
