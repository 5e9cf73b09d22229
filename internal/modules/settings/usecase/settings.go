package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/settings/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	settingsin "github.com/addielponce/anki-progress-circle/internal/modules/settings/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context, pkg string) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Get(ctx, pkg)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(pkg, cfg), nil
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Write(ctx, input.Package, domain.Config{
		MainColor:      input.MainColor,
		MainOpacity:    input.MainOpacity,
		BackColor:      input.BackColor,
		BackOpacity:    input.BackOpacity,
		MaskCircles:    input.MaskCircles,
		HideMainAtZero: input.HideMainAtZero,
		StrokeLinecap:  domain.Linecap(input.StrokeLinecap),
	})
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(input.Package, cfg), nil
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Set(ctx, input.Package, input.Key, input.Value)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(input.Package, cfg), nil
}

func (i *Interactor) RestoreDefaults(ctx context.Context, pkg string) (dto.ConfigOutput, error) {
	cfg, err := i.svc.RestoreDefaults(ctx, pkg)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(pkg, cfg), nil
}

func toOutput(pkg string, cfg domain.Config) dto.ConfigOutput {
	return dto.ConfigOutput{
		Package:        pkg,
		MainColor:      cfg.MainColor,
		MainOpacity:    cfg.MainOpacity,
		BackColor:      cfg.BackColor,
		BackOpacity:    cfg.BackOpacity,
		MaskCircles:    cfg.MaskCircles,
		HideMainAtZero: cfg.HideMainAtZero,
		StrokeLinecap:  string(cfg.StrokeLinecap),
	}
}
