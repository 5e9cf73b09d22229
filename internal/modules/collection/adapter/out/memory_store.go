package out

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/addielponce/anki-progress-circle/internal/modules/collection/domain"
	collectionout "github.com/addielponce/anki-progress-circle/internal/modules/collection/port/out"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type deckFixture struct {
	Current string       `yaml:"current"`
	Decks   []deckRecord `yaml:"decks"`
}

type deckRecord struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	New      int    `yaml:"new"`
	Learning int    `yaml:"learning"`
	Review   int    `yaml:"review"`
}

// DefaultDecks is the collection used when no fixture file exists.
func DefaultDecks() []domain.Deck {
	return []domain.Deck{
		{ID: "1", Name: "Default", New: 20, Learning: 0, Review: 30},
		{ID: "2", Name: "Vocabulary", New: 10, Learning: 3, Review: 12},
	}
}

// MemoryDeckStore keeps decks for the life of the process in fixture order.
type MemoryDeckStore struct {
	mu      sync.Mutex
	order   []string
	decks   map[string]domain.Deck
	current string
}

func NewMemoryDeckStore(decks []domain.Deck, currentID string) (collectionout.DeckStore, error) {
	store := &MemoryDeckStore{decks: map[string]domain.Deck{}}
	for _, deck := range decks {
		if err := deck.Validate(); err != nil {
			return nil, err
		}
		if _, dup := store.decks[deck.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate deck id %s", apperrors.ErrInvalidInput, deck.ID)
		}
		store.order = append(store.order, deck.ID)
		store.decks[deck.ID] = deck
	}
	switch {
	case currentID != "":
		if _, ok := store.decks[currentID]; !ok {
			return nil, fmt.Errorf("%w: current deck %s", apperrors.ErrNotFound, currentID)
		}
		store.current = currentID
	case len(store.order) > 0:
		store.current = store.order[0]
	}
	return store, nil
}

// LoadDeckFixture seeds a store from a YAML file, or from DefaultDecks when
// the file does not exist.
func LoadDeckFixture(path string) (collectionout.DeckStore, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMemoryDeckStore(DefaultDecks(), "")
		}
		return nil, fmt.Errorf("read decks: %w", err)
	}
	fixture := deckFixture{}
	if err := yaml.Unmarshal(payload, &fixture); err != nil {
		return nil, fmt.Errorf("decode decks: %w", err)
	}
	decks := make([]domain.Deck, 0, len(fixture.Decks))
	for _, record := range fixture.Decks {
		decks = append(decks, domain.Deck{
			ID:       record.ID,
			Name:     record.Name,
			New:      record.New,
			Learning: record.Learning,
			Review:   record.Review,
		})
	}
	return NewMemoryDeckStore(decks, fixture.Current)
}

func (s *MemoryDeckStore) List(_ context.Context) ([]domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return nil, apperrors.ErrNoCollection
	}
	out := make([]domain.Deck, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.decks[id])
	}
	return out, nil
}

func (s *MemoryDeckStore) Get(_ context.Context, deckID string) (domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return domain.Deck{}, apperrors.ErrNoCollection
	}
	deck, ok := s.decks[deckID]
	if !ok {
		return domain.Deck{}, fmt.Errorf("%w: deck %s", apperrors.ErrNotFound, deckID)
	}
	return deck, nil
}

func (s *MemoryDeckStore) Save(_ context.Context, deck domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.order, deck.ID) {
		s.order = append(s.order, deck.ID)
	}
	s.decks[deck.ID] = deck
	if s.current == "" {
		s.current = deck.ID
	}
	return nil
}

func (s *MemoryDeckStore) CurrentID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return "", apperrors.ErrNoCollection
	}
	return s.current, nil
}

func (s *MemoryDeckStore) SetCurrent(_ context.Context, deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[deckID]; !ok {
		return fmt.Errorf("%w: deck %s", apperrors.ErrNotFound, deckID)
	}
	s.current = deckID
	return nil
}
