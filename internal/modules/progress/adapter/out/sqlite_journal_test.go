package out_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	progressout "github.com/addielponce/anki-progress-circle/internal/modules/progress/adapter/out"
	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
)

func record(t *testing.T, ctx context.Context, journal interface {
	Record(context.Context, domain.Observation) error
}, seq int, snapshot domain.Snapshot) {
	t.Helper()
	err := journal.Record(ctx, domain.Observation{
		ID:       fmt.Sprintf("obs-%d", seq),
		Snapshot: snapshot,
		Counts:   domain.Counts{Review: snapshot.Remaining},
		At:       fmt.Sprintf("2026-02-25T10:00:%02dZ", seq),
	})
	if err != nil {
		t.Fatalf("record observation %d: %v", seq, err)
	}
}

func TestSQLiteJournalAggregatesEpochs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal, err := progressout.NewSQLiteJournal(filepath.Join(t.TempDir(), "state", "journal.db"), "run-1")
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}

	tracker := domain.NewTracker()
	seq := 0
	for _, remaining := range []int{10, 4, 7, 0} {
		seq++
		record(t, ctx, journal, seq, tracker.Observe("deckA", remaining))
	}
	seq++
	record(t, ctx, journal, seq, tracker.Observe("deckB", 3))

	all, err := journal.Epochs(ctx, "", 10)
	if err != nil {
		t.Fatalf("epochs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 epochs, got %d: %+v", len(all), all)
	}
	if all[0].GroupID != "deckB" {
		t.Fatalf("expected most recent epoch first, got %+v", all[0])
	}

	deckA, err := journal.Epochs(ctx, "deckA", 10)
	if err != nil {
		t.Fatalf("deckA epochs: %v", err)
	}
	if len(deckA) != 2 {
		t.Fatalf("expected 2 deckA epochs, got %d", len(deckA))
	}
	latest := deckA[0]
	if latest.Epoch != 2 || latest.Goal != 7 || latest.BestDone != 7 || latest.LastPercent != 100 || latest.Samples != 2 {
		t.Fatalf("unexpected latest epoch: %+v", latest)
	}
	first := deckA[1]
	if first.Epoch != 1 || first.Goal != 10 || first.BestDone != 6 || first.LastPercent != 60 {
		t.Fatalf("unexpected first epoch: %+v", first)
	}
	if first.FirstSeen != "2026-02-25T10:00:01Z" || first.LastSeen != "2026-02-25T10:00:02Z" {
		t.Fatalf("unexpected first epoch window: %+v", first)
	}
}

func TestSQLiteJournalRequiresRunID(t *testing.T) {
	t.Parallel()
	if _, err := progressout.NewSQLiteJournal(filepath.Join(t.TempDir(), "j.db"), ""); err == nil {
		t.Fatalf("expected missing run id error")
	}
}

func TestSQLiteJournalLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal, err := progressout.NewSQLiteJournal(filepath.Join(t.TempDir(), "j.db"), "run-1")
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}
	tracker := domain.NewTracker()
	for i, group := range []string{"a", "b", "c"} {
		record(t, ctx, journal, i+1, tracker.Observe(group, 5))
	}
	epochs, err := journal.Epochs(ctx, "", 2)
	if err != nil {
		t.Fatalf("epochs: %v", err)
	}
	if len(epochs) != 2 || epochs[0].GroupID != "c" || epochs[1].GroupID != "b" {
		t.Fatalf("unexpected limited epochs: %+v", epochs)
	}
}
