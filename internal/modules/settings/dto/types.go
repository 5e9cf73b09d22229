package dto

type ConfigOutput struct {
	Package        string
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	MaskCircles    bool
	HideMainAtZero bool
	StrokeLinecap  string
}

type SaveInput struct {
	Package        string
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	MaskCircles    bool
	HideMainAtZero bool
	StrokeLinecap  string
}

type SetInput struct {
	Package string
	Key     string
	Value   string
}
