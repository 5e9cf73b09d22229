package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type Linecap string

const (
	LinecapButt  Linecap = "butt"
	LinecapRound Linecap = "round"
)

// Linecaps is the order offered to the user.
var Linecaps = []Linecap{LinecapButt, LinecapRound}

func (l Linecap) Validate() error {
	switch l {
	case LinecapButt, LinecapRound:
		return nil
	default:
		return fmt.Errorf("%w: stroke_linecap %q", apperrors.ErrInvalidConfig, string(l))
	}
}

const (
	KeyMainColor     = "main_color"
	KeyMainOpacity   = "main_color_opacity"
	KeyBackColor     = "back_color"
	KeyBackOpacity   = "back_color_opacity"
	KeyMaskCircles   = "mask_circles"
	KeyHideAtZero    = "hide_main_circle_at_zero"
	KeyStrokeLinecap = "stroke_linecap"

	DefaultOpacity = 100
)

// Keys lists every setting in display order.
var Keys = []string{KeyMainColor, KeyMainOpacity, KeyBackColor, KeyBackOpacity, KeyMaskCircles, KeyHideAtZero, KeyStrokeLinecap}

type Config struct {
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	MaskCircles    bool
	HideMainAtZero bool
	StrokeLinecap  Linecap
}

// FromMap reads a host config mapping. Opacities fall back to 100; every
// other key is required.
func FromMap(raw map[string]any) (Config, error) {
	cfg := Config{}
	var err error
	if cfg.MainColor, err = colorAt(raw, KeyMainColor); err != nil {
		return Config{}, err
	}
	if cfg.BackColor, err = colorAt(raw, KeyBackColor); err != nil {
		return Config{}, err
	}
	if cfg.MainOpacity, err = opacityAt(raw, KeyMainOpacity); err != nil {
		return Config{}, err
	}
	if cfg.BackOpacity, err = opacityAt(raw, KeyBackOpacity); err != nil {
		return Config{}, err
	}
	if cfg.MaskCircles, err = boolAt(raw, KeyMaskCircles); err != nil {
		return Config{}, err
	}
	if cfg.HideMainAtZero, err = boolAt(raw, KeyHideAtZero); err != nil {
		return Config{}, err
	}
	linecap, err := stringAt(raw, KeyStrokeLinecap)
	if err != nil {
		return Config{}, err
	}
	cfg.StrokeLinecap = Linecap(linecap)
	if err := cfg.StrokeLinecap.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) ToMap() map[string]any {
	return map[string]any{
		KeyMainColor:     c.MainColor,
		KeyMainOpacity:   c.MainOpacity,
		KeyBackColor:     c.BackColor,
		KeyBackOpacity:   c.BackOpacity,
		KeyMaskCircles:   c.MaskCircles,
		KeyHideAtZero:    c.HideMainAtZero,
		KeyStrokeLinecap: string(c.StrokeLinecap),
	}
}

// Normalize validates the config and rewrites colors as #rrggbb and
// opacities into 0..100.
func (c Config) Normalize() (Config, error) {
	var err error
	if c.MainColor, err = NormalizeColor(c.MainColor); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyMainColor, err)
	}
	if c.BackColor, err = NormalizeColor(c.BackColor); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyBackColor, err)
	}
	c.MainOpacity = ClampOpacity(c.MainOpacity)
	c.BackOpacity = ClampOpacity(c.BackOpacity)
	if err := c.StrokeLinecap.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// With returns a copy with one key set from its textual form.
func (c Config) With(key, value string) (Config, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyMainColor:
		color, err := NormalizeColor(value)
		if err != nil {
			return Config{}, err
		}
		c.MainColor = color
	case KeyBackColor:
		color, err := NormalizeColor(value)
		if err != nil {
			return Config{}, err
		}
		c.BackColor = color
	case KeyMainOpacity, KeyBackOpacity:
		n, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be an integer", apperrors.ErrInvalidConfig, key)
		}
		if key == KeyMainOpacity {
			c.MainOpacity = ClampOpacity(n)
		} else {
			c.BackOpacity = ClampOpacity(n)
		}
	case KeyMaskCircles, KeyHideAtZero:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be true or false", apperrors.ErrInvalidConfig, key)
		}
		if key == KeyMaskCircles {
			c.MaskCircles = b
		} else {
			c.HideMainAtZero = b
		}
	case KeyStrokeLinecap:
		linecap := Linecap(strings.ToLower(value))
		if err := linecap.Validate(); err != nil {
			return Config{}, err
		}
		c.StrokeLinecap = linecap
	default:
		return Config{}, fmt.Errorf("%w: unknown key %q", apperrors.ErrInvalidInput, key)
	}
	return c, nil
}

func NormalizeColor(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	color, err := colorful.Hex(strings.ToLower(value))
	if err != nil {
		return "", fmt.Errorf("%w: color %q", apperrors.ErrInvalidConfig, value)
	}
	return color.Hex(), nil
}

func ClampOpacity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func colorAt(raw map[string]any, key string) (string, error) {
	s, err := stringAt(raw, key)
	if err != nil {
		return "", err
	}
	color, err := NormalizeColor(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return color, nil
}

func stringAt(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrMissingKey, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", apperrors.ErrInvalidConfig, key, v)
	}
	return s, nil
}

func boolAt(raw map[string]any, key string) (bool, error) {
	v, ok := raw[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", apperrors.ErrMissingKey, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", apperrors.ErrInvalidConfig, key, v)
	}
	return b, nil
}

func opacityAt(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return DefaultOpacity, nil
	}
	switch n := v.(type) {
	case int:
		return ClampOpacity(n), nil
	case int64:
		return ClampOpacity(int(n)), nil
	case uint64:
		return ClampOpacity(int(min(n, 100))), nil
	case float64:
		if math.IsNaN(n) || n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be a whole number", apperrors.ErrInvalidConfig, key)
		}
		return ClampOpacity(int(math.Max(-1, math.Min(n, 101)))), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", apperrors.ErrInvalidConfig, key, v)
	}
}
