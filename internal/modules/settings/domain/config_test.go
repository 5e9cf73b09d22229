package domain_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/addielponce/anki-progress-circle/internal/modules/settings/domain"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

func validMap() map[string]any {
	return map[string]any{
		"main_color":               "#32CD32",
		"main_color_opacity":       float64(80),
		"back_color":               "#333",
		"back_color_opacity":       30,
		"mask_circles":             true,
		"hide_main_circle_at_zero": false,
		"stroke_linecap":           "round",
	}
}

func TestFromMapNormalizes(t *testing.T) {
	t.Parallel()
	cfg, err := domain.FromMap(validMap())
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	want := domain.Config{
		MainColor:      "#32cd32",
		MainOpacity:    80,
		BackColor:      "#333333",
		BackOpacity:    30,
		MaskCircles:    true,
		HideMainAtZero: false,
		StrokeLinecap:  domain.LinecapRound,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMapDefaultsOpacities(t *testing.T) {
	t.Parallel()
	raw := validMap()
	delete(raw, "main_color_opacity")
	delete(raw, "back_color_opacity")
	cfg, err := domain.FromMap(raw)
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if cfg.MainOpacity != 100 || cfg.BackOpacity != 100 {
		t.Fatalf("expected opacities to default to 100, got %d/%d", cfg.MainOpacity, cfg.BackOpacity)
	}
}

func TestFromMapErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(map[string]any)
		want   error
	}{
		{name: "missing main color", mutate: func(m map[string]any) { delete(m, "main_color") }, want: apperrors.ErrMissingKey},
		{name: "missing mask", mutate: func(m map[string]any) { delete(m, "mask_circles") }, want: apperrors.ErrMissingKey},
		{name: "missing linecap", mutate: func(m map[string]any) { delete(m, "stroke_linecap") }, want: apperrors.ErrMissingKey},
		{name: "bad color", mutate: func(m map[string]any) { m["back_color"] = "teal-ish" }, want: apperrors.ErrInvalidConfig},
		{name: "bool as string", mutate: func(m map[string]any) { m["hide_main_circle_at_zero"] = "yes" }, want: apperrors.ErrInvalidConfig},
		{name: "fractional opacity", mutate: func(m map[string]any) { m["main_color_opacity"] = 12.5 }, want: apperrors.ErrInvalidConfig},
		{name: "unknown linecap", mutate: func(m map[string]any) { m["stroke_linecap"] = "square" }, want: apperrors.ErrInvalidConfig},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			raw := validMap()
			tc.mutate(raw)
			if _, err := domain.FromMap(raw); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestOpacityIsClamped(t *testing.T) {
	t.Parallel()
	raw := validMap()
	raw["main_color_opacity"] = 250
	raw["back_color_opacity"] = float64(-4)
	cfg, err := domain.FromMap(raw)
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if cfg.MainOpacity != 100 || cfg.BackOpacity != 0 {
		t.Fatalf("expected clamped opacities, got %d/%d", cfg.MainOpacity, cfg.BackOpacity)
	}
}

func TestWithParsesTextualValues(t *testing.T) {
	t.Parallel()
	cfg, err := domain.FromMap(validMap())
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	steps := []struct{ key, value string }{
		{"main_color", "FF8800"},
		{"back_color_opacity", "45%"},
		{"mask_circles", "false"},
		{"stroke_linecap", "BUTT"},
	}
	for _, step := range steps {
		cfg, err = cfg.With(step.key, step.value)
		if err != nil {
			t.Fatalf("set %s=%s: %v", step.key, step.value, err)
		}
	}
	if cfg.MainColor != "#ff8800" || cfg.BackOpacity != 45 || cfg.MaskCircles || cfg.StrokeLinecap != domain.LinecapButt {
		t.Fatalf("unexpected config after updates: %+v", cfg)
	}
	if _, err := cfg.With("font", "x"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	if _, err := cfg.With("main_color_opacity", "lots"); !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("expected invalid opacity error, got %v", err)
	}
}
