package dto

type AddonInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Hooks   []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type QueueInput struct {
	DeckID        string
	New           int
	Learning      int
	Review        int
	HasCollection bool
}

type DispatchInput struct {
	AddonName string
	Kind      string
	State     string
	OldState  string
	Queue     *QueueInput
}

type ToggleInput struct {
	AddonName string
	Queue     *QueueInput
}

type ActionOutput struct {
	ID    string
	Label string
}

type MenuOutput struct {
	Title   string
	Actions []ActionOutput
}

type FrameOutput struct {
	AddonName string
	Visible   bool
	Refreshed bool
	Markup    string
	Done      int
	Total     int
	Percent   float64
	Menu      *MenuOutput
}
