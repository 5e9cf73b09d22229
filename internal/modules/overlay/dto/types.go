package dto

type StyleInput struct {
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	MaskCircles    bool
	HideMainAtZero bool
	StrokeLinecap  string
}

type FrameInput struct {
	Done    int
	Total   int
	Percent float64
	Style   StyleInput
}

type FrameOutput struct {
	Visible bool
	// Markup is the rendered SVG; empty when nothing was drawn.
	Markup string
	// Redrawn reports whether the surface was repainted.
	Redrawn bool
}
