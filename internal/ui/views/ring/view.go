package ring

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/addielponce/anki-progress-circle/internal/ui/theme"
)

// Progress is the triple the ring shows.
type Progress struct {
	Done    int
	Total   int
	Percent float64
}

// Style carries the overlay colors; opacities are 0..100.
type Style struct {
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	HideMainAtZero bool
}

const cell = "●"

// Render draws the ring as a grid of cells, progress running clockwise from
// twelve o'clock. Terminal cells are twice as tall as wide, so columns are
// sampled at half steps.
func Render(p Progress, s Style, radius int) string {
	if radius < 3 {
		radius = 3
	}
	main := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(s.MainColor, s.MainOpacity)))
	back := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(s.BackColor, s.BackOpacity)))
	filled := math.Max(0, math.Min(p.Percent, 100)) / 100
	showMain := !(s.HideMainAtZero && filled == 0)

	r := float64(radius)
	label := fmt.Sprintf("%d/%d", p.Done, p.Total)
	percent := fmt.Sprintf("%.0f%%", p.Percent)
	width := radius*4 + 1

	var sb strings.Builder
	for row := -radius; row <= radius; row++ {
		line := make([]string, 0, width)
		for col := -radius * 2; col <= radius*2; col++ {
			x := float64(col) / 2
			y := float64(row)
			dist := math.Hypot(x, y)
			if math.Abs(dist-r) > 0.5 {
				line = append(line, " ")
				continue
			}
			// Angle measured clockwise from the top.
			angle := math.Atan2(x, -y)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if showMain && angle/(2*math.Pi) < filled {
				line = append(line, main.Render(cell))
			} else {
				line = append(line, back.Render(cell))
			}
		}
		text := strings.Join(line, "")
		switch row {
		case 0:
			text = overlay(line, label)
		case 1:
			text = overlay(line, percent)
		}
		sb.WriteString(text)
		if row < radius {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// overlay centers text over the blank interior of a row.
func overlay(line []string, text string) string {
	start := (len(line) - len(text)) / 2
	if start < 0 {
		return strings.Join(line, "")
	}
	out := make([]string, 0, len(line))
	out = append(out, line[:start]...)
	out = append(out, theme.Title.Render(text))
	out = append(out, line[start+len(text):]...)
	return strings.Join(out, "")
}

// blend mixes a color toward the theme background by its opacity.
func blend(hex string, opacity int) string {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return string(theme.Subtext0)
	}
	bg, err := colorful.Hex(string(theme.Base))
	if err != nil {
		return fg.Hex()
	}
	alpha := float64(max(0, min(opacity, 100))) / 100
	return bg.BlendRgb(fg, alpha).Clamped().Hex()
}
