package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	collectiondto "github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
	settingsdto "github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	"github.com/addielponce/anki-progress-circle/internal/ui/components"
)

type dispatched struct{ kind, state, old string }

type fakeDriver struct {
	events  []dispatched
	toggles int
	visible bool
	frame   Frame
}

func (f *fakeDriver) Dispatch(_ context.Context, kind, state, old string) (Frame, error) {
	f.events = append(f.events, dispatched{kind, state, old})
	if kind == EventMainWindowDidInit {
		return Frame{Visible: f.visible, Menu: &Menu{Title: "Circular progress ⭕", Actions: []MenuAction{
			{ID: "toggle", Label: "Toggle circular progress"},
			{ID: "settings", Label: "Settings"},
		}}}, nil
	}
	if !f.visible {
		return Frame{}, nil
	}
	out := f.frame
	out.Visible, out.Refreshed = true, true
	return out, nil
}

func (f *fakeDriver) Toggle(context.Context) (Frame, error) {
	f.toggles++
	f.visible = !f.visible
	out := f.frame
	out.Visible = f.visible
	return out, nil
}

type fakeCollection struct {
	deck collectiondto.DeckOutput
}

func (f *fakeCollection) List(context.Context) ([]collectiondto.DeckOutput, error) {
	return []collectiondto.DeckOutput{f.deck}, nil
}

func (f *fakeCollection) Current(context.Context) (collectiondto.DeckOutput, error) {
	return f.deck, nil
}

func (f *fakeCollection) Select(_ context.Context, id string) (collectiondto.DeckOutput, error) {
	f.deck.ID = id
	return f.deck, nil
}

func (f *fakeCollection) Next(context.Context) (collectiondto.DeckOutput, error) {
	return f.deck, nil
}

func (f *fakeCollection) Answer(context.Context) (collectiondto.DeckOutput, error) {
	f.deck.Review--
	return f.deck, nil
}

func (f *fakeCollection) Add(_ context.Context, n int) (collectiondto.DeckOutput, error) {
	f.deck.New += n
	return f.deck, nil
}

type fakeSettings struct {
	cfg settingsdto.ConfigOutput
}

func (f *fakeSettings) Show(context.Context) (settingsdto.ConfigOutput, error) { return f.cfg, nil }

func (f *fakeSettings) Set(_ context.Context, key, value string) (settingsdto.ConfigOutput, error) {
	if key == "main_color" {
		f.cfg.MainColor = value
	}
	return f.cfg, nil
}

func (f *fakeSettings) Reset(context.Context) (settingsdto.ConfigOutput, error) { return f.cfg, nil }

func newTestModel() (Model, *fakeDriver, *fakeCollection) {
	driver := &fakeDriver{frame: Frame{Done: 6, Total: 10, Percent: 60}}
	collection := &fakeCollection{deck: collectiondto.DeckOutput{ID: "1", Name: "Default", Review: 10, Current: true}}
	settings := &fakeSettings{cfg: settingsdto.ConfigOutput{MainColor: "#32cd32", MainOpacity: 100, BackColor: "#3c3c3c", BackOpacity: 35}}
	return NewModel(driver, collection, settings, ""), driver, collection
}

// run feeds the message produced by cmd back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func palette(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	return next.(Model), cmd
}

func TestStartInstallsMenu(t *testing.T) {
	t.Parallel()
	m, driver, _ := newTestModel()
	m = run(t, m, m.startCmd())

	if m.menu == nil || len(m.menu.Actions) != 2 {
		t.Fatalf("expected menu with two actions, got %#v", m.menu)
	}
	if !m.hasDeck || m.deck.Name != "Default" {
		t.Fatalf("expected current deck loaded, got %#v", m.deck)
	}
	if len(driver.events) != 1 || driver.events[0].kind != EventMainWindowDidInit {
		t.Fatalf("unexpected events: %#v", driver.events)
	}
}

func TestToggleShowsRing(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	m.width, m.height = 80, 30
	m = run(t, m, m.toggleCmd())

	if !m.frame.Visible || m.progress.Percent != 60 {
		t.Fatalf("expected visible frame at 60%%, got %#v %#v", m.frame, m.progress)
	}
	if view := m.View(); !strings.Contains(view, "6/10") {
		t.Fatalf("expected ring label in view:\n%s", view)
	}
}

func TestAnswerRequiresReview(t *testing.T) {
	t.Parallel()
	m, driver, collection := newTestModel()
	m = run(t, m, m.answerCmd())
	if !strings.Contains(m.status, "not reviewing") {
		t.Fatalf("expected review-state error, got %q", m.status)
	}
	if collection.deck.Review != 10 {
		t.Fatalf("expected no card answered")
	}

	m, cmd := palette(t, m, "host:state review")
	m = run(t, m, cmd)
	if m.state != "review" {
		t.Fatalf("expected review state, got %q", m.state)
	}
	m = run(t, m, m.answerCmd())
	if collection.deck.Review != 9 || m.deck.Review != 9 {
		t.Fatalf("expected one card answered, got %d", collection.deck.Review)
	}
	last := driver.events[len(driver.events)-1]
	if last.kind != EventShowQuestion {
		t.Fatalf("expected question hook after answer, got %#v", last)
	}
}

func TestHiddenFrameKeepsLastProgress(t *testing.T) {
	t.Parallel()
	m, driver, _ := newTestModel()
	m = run(t, m, m.toggleCmd())
	driver.frame = Frame{Done: 9, Total: 10, Percent: 90}
	m = run(t, m, m.toggleCmd())
	if m.frame.Visible {
		t.Fatalf("expected hidden frame")
	}
	m = run(t, m, m.addCmd(2))
	if m.progress.Percent != 60 {
		t.Fatalf("expected progress untouched while hidden, got %v", m.progress.Percent)
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	m, driver, collection := newTestModel()

	m, cmd := palette(t, m, "deck:add 3")
	m = run(t, m, cmd)
	if collection.deck.New != 3 {
		t.Fatalf("expected three cards added, got %d", collection.deck.New)
	}

	m, cmd = palette(t, m, "deck:add zero")
	if cmd != nil || !strings.Contains(m.status, "positive integer") {
		t.Fatalf("expected count validation, got %q", m.status)
	}

	m, cmd = palette(t, m, "deck:select 2")
	m = run(t, m, cmd)
	if m.state != "overview" || m.deck.ID != "2" {
		t.Fatalf("expected overview of deck 2, got %q %q", m.state, m.deck.ID)
	}
	last := driver.events[len(driver.events)-1]
	if last != (dispatched{EventStateDidChange, "overview", "deckBrowser"}) {
		t.Fatalf("unexpected state event: %#v", last)
	}

	m, _ = palette(t, m, "bogus")
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = palette(t, m, "menu:run settings")
	if !strings.Contains(m.status, "menu not installed") {
		t.Fatalf("expected menu guard, got %q", m.status)
	}
	m = run(t, m, m.startCmd())
	m, cmd = palette(t, m, "menu:run settings")
	if m.activeTab != tabSettings || cmd == nil {
		t.Fatalf("expected settings tab, got %v", m.activeTab)
	}
}
