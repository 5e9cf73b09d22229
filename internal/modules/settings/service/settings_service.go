package service

import (
	"context"
	"fmt"
	"maps"

	"github.com/addielponce/anki-progress-circle/internal/modules/settings/domain"
	settingsout "github.com/addielponce/anki-progress-circle/internal/modules/settings/port/out"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type SettingsService struct {
	store settingsout.Store
}

func NewSettingsService(store settingsout.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context, pkg string) (domain.Config, error) {
	if pkg == "" {
		return domain.Config{}, fmt.Errorf("%w: package is required", apperrors.ErrInvalidInput)
	}
	raw, err := s.store.Load(ctx, pkg)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := domain.FromMap(raw)
	if err != nil {
		return domain.Config{}, fmt.Errorf("load %s config: %w", pkg, err)
	}
	return cfg, nil
}

// Write stores cfg, keeping keys this add-on does not own.
func (s *SettingsService) Write(ctx context.Context, pkg string, cfg domain.Config) (domain.Config, error) {
	if pkg == "" {
		return domain.Config{}, fmt.Errorf("%w: package is required", apperrors.ErrInvalidInput)
	}
	normalized, err := cfg.Normalize()
	if err != nil {
		return domain.Config{}, err
	}
	raw, err := s.store.Load(ctx, pkg)
	if err != nil {
		return domain.Config{}, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	maps.Copy(raw, normalized.ToMap())
	if err := s.store.Write(ctx, pkg, raw); err != nil {
		return domain.Config{}, err
	}
	return normalized, nil
}

func (s *SettingsService) Set(ctx context.Context, pkg, key, value string) (domain.Config, error) {
	current, err := s.Get(ctx, pkg)
	if err != nil {
		return domain.Config{}, err
	}
	updated, err := current.With(key, value)
	if err != nil {
		return domain.Config{}, err
	}
	return s.Write(ctx, pkg, updated)
}

// RestoreDefaults writes the package defaults over the current values. A
// package without defaults is left untouched, and a default linecap outside
// the offered values keeps the current one.
func (s *SettingsService) RestoreDefaults(ctx context.Context, pkg string) (domain.Config, error) {
	current, err := s.Get(ctx, pkg)
	if err != nil {
		return domain.Config{}, err
	}
	defaults, err := s.store.Defaults(ctx, pkg)
	if err != nil {
		return domain.Config{}, err
	}
	if len(defaults) == 0 {
		return current, nil
	}

	linecap, hasLinecap := defaults[domain.KeyStrokeLinecap].(string)
	if !hasLinecap || domain.Linecap(linecap).Validate() != nil {
		defaults = maps.Clone(defaults)
		defaults[domain.KeyStrokeLinecap] = string(current.StrokeLinecap)
	}
	restored, err := domain.FromMap(defaults)
	if err != nil {
		return domain.Config{}, fmt.Errorf("restore %s defaults: %w", pkg, err)
	}
	return s.Write(ctx, pkg, restored)
}
