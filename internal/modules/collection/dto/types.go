package dto

type DeckOutput struct {
	ID        string
	Name      string
	New       int
	Learning  int
	Review    int
	Remaining int
	Current   bool
}

type AddInput struct {
	Count int
}
