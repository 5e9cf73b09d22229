package decks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	collectiondto "github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
	"github.com/addielponce/anki-progress-circle/internal/ui/theme"
)

// Port is the minimal interface this view needs from the collection.
type Port interface {
	List(ctx context.Context) ([]collectiondto.DeckOutput, error)
}

// LoadedMsg carries a fresh deck listing.
type LoadedMsg struct {
	Decks []collectiondto.DeckOutput
	Err   error
}

// SelectMsg asks the parent to make a deck current.
type SelectMsg struct{ DeckID string }

type deckItem struct{ deck collectiondto.DeckOutput }

func (i deckItem) Title() string {
	if i.deck.Current {
		return "● " + i.deck.Name
	}
	return i.deck.Name
}

func (i deckItem) Description() string {
	return fmt.Sprintf("new %d · learning %d · review %d", i.deck.New, i.deck.Learning, i.deck.Review)
}

func (i deckItem) FilterValue() string { return i.deck.ID + " " + i.deck.Name }

// Model lists the decks of the simulated collection.
type Model struct {
	port   Port
	list   list.Model
	err    error
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Decks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Reload re-reads the deck listing.
func (m Model) Reload() tea.Cmd {
	port := m.port
	if port == nil {
		return nil
	}
	return func() tea.Msg {
		decks, err := port.List(context.Background())
		return LoadedMsg{Decks: decks, Err: err}
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the highlighted deck ID.
func (m Model) Selected() (string, bool) {
	item, ok := m.list.SelectedItem().(deckItem)
	if !ok {
		return "", false
	}
	return item.deck.ID, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.Decks))
		for _, deck := range msg.Decks {
			items = append(items, deckItem{deck: deck})
		}
		return m, m.list.SetItems(items)
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			id, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectMsg{DeckID: id} }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Hot.Render("decks: " + m.err.Error())
	}
	hint := theme.Muted.Render("enter: study deck  /: filter")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint)
}
