package decks

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	collectiondto "github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
)

type fakePort struct {
	decks []collectiondto.DeckOutput
	err   error
}

func (f fakePort) List(context.Context) ([]collectiondto.DeckOutput, error) {
	return f.decks, f.err
}

func loaded(t *testing.T, port Port) Model {
	t.Helper()
	m := New(port)
	m.SetSize(60, 20)
	msg := m.Reload()()
	m, _ = m.Update(msg)
	return m
}

func TestReloadAndSelect(t *testing.T) {
	t.Parallel()
	m := loaded(t, fakePort{decks: []collectiondto.DeckOutput{
		{ID: "1", Name: "Default", New: 20, Review: 30, Current: true},
		{ID: "2", Name: "Vocabulary", New: 10, Learning: 3, Review: 12},
	}})

	id, ok := m.Selected()
	if !ok || id != "1" {
		t.Fatalf("expected first deck selected, got %q %v", id, ok)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected select command")
	}
	sel, ok := cmd().(SelectMsg)
	if !ok || sel.DeckID != "2" {
		t.Fatalf("expected SelectMsg for deck 2, got %#v", cmd())
	}
}

func TestLoadError(t *testing.T) {
	t.Parallel()
	m := loaded(t, fakePort{err: errors.New("boom")})
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected no selection after failed load")
	}
	if got := m.View(); got == "" {
		t.Fatalf("expected error view")
	}
}

func TestNilPort(t *testing.T) {
	t.Parallel()
	if cmd := New(nil).Reload(); cmd != nil {
		t.Fatalf("expected nil reload command without a port")
	}
}
