package dto

type ObserveInput struct {
	GroupID       string
	New           int
	Learning      int
	Review        int
	HasCollection bool
}

type ProgressOutput struct {
	GroupID string
	Done    int
	Total   int
	Percent float64
	Epoch   int
	Started bool
}

type HistoryInput struct {
	GroupID string
	Limit   int
}

type EpochOutput struct {
	GroupID     string
	Epoch       int
	Goal        int
	BestDone    int
	LastPercent float64
	FirstSeen   string
	LastSeen    string
	Samples     int
}
