package dto

type QueueInput struct {
	DeckID        string
	New           int
	Learning      int
	Review        int
	HasCollection bool
}

type EventInput struct {
	Kind     string
	State    string
	OldState string
	// Queue is nil when the add-on should query its scheduler.
	Queue *QueueInput
}

type SettingsInput struct {
	MainColor      string
	MainOpacity    int
	BackColor      string
	BackOpacity    int
	MaskCircles    bool
	HideMainAtZero bool
	StrokeLinecap  string
	Queue          *QueueInput
}

type ActionOutput struct {
	ID    string
	Label string
}

type MenuOutput struct {
	Title   string
	Actions []ActionOutput
}

type MetadataOutput struct {
	Name    string
	Version string
	Hooks   []string
}

type FrameOutput struct {
	Visible   bool
	Refreshed bool
	Markup    string
	Done      int
	Total     int
	Percent   float64
	Menu      *MenuOutput
}
