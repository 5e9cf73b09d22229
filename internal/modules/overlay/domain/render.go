package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	colorful "github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

const (
	Radius        = 45.0
	Circumference = 2 * 3.1416 * Radius
	StrokeWidth   = 10.0
	Center        = 50.0

	maskID = "progress-circle-mask"
)

// Frame is the progress triple drawn by the overlay.
type Frame struct {
	Done    int
	Total   int
	Percent float64
}

type Style struct {
	MainColor   string
	MainOpacity int
	BackColor   string
	BackOpacity int
	// MaskCircles hides the back circle under the painted arc.
	MaskCircles bool
	// HideMainAtZero drops the arc entirely at 0%.
	HideMainAtZero bool
	StrokeLinecap  string
}

func (s Style) Validate() error {
	for _, color := range []string{s.MainColor, s.BackColor} {
		if _, err := colorful.Hex(color); err != nil {
			return fmt.Errorf("%w: color %q", apperrors.ErrInvalidInput, color)
		}
	}
	switch s.StrokeLinecap {
	case "butt", "round":
	default:
		return fmt.Errorf("%w: stroke linecap %q", apperrors.ErrInvalidInput, s.StrokeLinecap)
	}
	return nil
}

// DashOffset is how much of the circumference stays unpainted.
func DashOffset(percent float64) float64 {
	return Circumference * (1 - clampPercent(percent)/100)
}

var svgTemplate = template.Must(template.New("circle").Parse(strings.TrimSpace(`
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100%" height="100%">
<title>{{.Done}}/{{.Total}}</title>
{{- if .Mask}}
<defs>
<mask id="{{.MaskID}}" maskUnits="userSpaceOnUse" x="0" y="0" width="100" height="100">
<rect x="0" y="0" width="100" height="100" fill="white"/>
<circle cx="{{.Center}}" cy="{{.Center}}" r="{{.Radius}}" fill="none" stroke="black" stroke-width="{{.Width}}" stroke-linecap="{{.Linecap}}" stroke-dasharray="{{.Circumference}}" stroke-dashoffset="{{.DashOffset}}" transform="rotate(-90 {{.Center}} {{.Center}})"/>
</mask>
</defs>
{{- end}}
<circle id="back" cx="{{.Center}}" cy="{{.Center}}" r="{{.Radius}}" fill="none" stroke="{{.BackColor}}" stroke-opacity="{{.BackOpacity}}" stroke-width="{{.Width}}"{{if .Mask}} mask="url(#{{.MaskID}})"{{end}}/>
{{- if .ShowMain}}
<circle id="main" cx="{{.Center}}" cy="{{.Center}}" r="{{.Radius}}" fill="none" stroke="{{.MainColor}}" stroke-opacity="{{.MainOpacity}}" stroke-width="{{.Width}}" stroke-linecap="{{.Linecap}}" stroke-dasharray="{{.Circumference}}" stroke-dashoffset="{{.DashOffset}}" transform="rotate(-90 {{.Center}} {{.Center}})"/>
{{- end}}
</svg>`)))

type svgView struct {
	Done  int
	Total int

	Center        string
	Radius        string
	Width         string
	Circumference string
	DashOffset    string

	MainColor   string
	MainOpacity string
	BackColor   string
	BackOpacity string
	Linecap     string
	MaskID      string

	ShowMain bool
	Mask     bool
}

// Render draws frame as a standalone SVG document. The output depends only
// on its arguments.
func Render(frame Frame, style Style) (string, error) {
	if err := style.Validate(); err != nil {
		return "", err
	}
	percent := clampPercent(frame.Percent)
	showMain := !(style.HideMainAtZero && percent == 0)
	view := svgView{
		Done:          frame.Done,
		Total:         frame.Total,
		Center:        formatNumber(Center),
		Radius:        formatNumber(Radius),
		Width:         formatNumber(StrokeWidth),
		Circumference: formatNumber(Circumference),
		DashOffset:    formatNumber(DashOffset(percent)),
		MainColor:     style.MainColor,
		MainOpacity:   opacity(style.MainOpacity),
		BackColor:     style.BackColor,
		BackOpacity:   opacity(style.BackOpacity),
		Linecap:       style.StrokeLinecap,
		MaskID:        maskID,
		ShowMain:      showMain,
		Mask:          style.MaskCircles && showMain,
	}
	var out strings.Builder
	if err := svgTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("render circle: %w", err)
	}
	return out.String(), nil
}

const documentHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
html, body { margin: 0; height: 100%; background: transparent; overflow: hidden; }
svg { display: block; width: 100%; height: 100%; }
</style>
</head>
<body>
`

// Document wraps svg in a transparent page for a webview surface.
func Document(svg string) string {
	return documentHead + svg + "\n</body>\n</html>\n"
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func opacity(v int) string {
	v = max(0, min(v, 100))
	return formatNumber(float64(v) / 100)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
