package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/addielponce/anki-progress-circle/internal/modules/progress/domain"
)

type triple struct {
	Done    int
	Total   int
	Percent float64
}

func tripleOf(s domain.Snapshot) triple {
	return triple{Done: s.Done, Total: s.Total, Percent: s.Percent}
}

func TestObserveDeckScenario(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	steps := []struct {
		remaining int
		want      triple
		started   bool
	}{
		{remaining: 10, want: triple{0, 10, 0}, started: true},
		{remaining: 4, want: triple{6, 10, 60}},
		{remaining: 7, want: triple{0, 7, 0}, started: true},
		{remaining: 0, want: triple{7, 7, 100}},
	}
	for i, step := range steps {
		got := tracker.Observe("deckA", step.remaining)
		if diff := cmp.Diff(step.want, tripleOf(got), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Fatalf("step %d (remaining=%d) mismatch (-want +got):\n%s", i, step.remaining, diff)
		}
		if got.Started != step.started {
			t.Fatalf("step %d: expected started=%t, got %t", i, step.started, got.Started)
		}
	}
}

func TestFirstObservationStartsAtZero(t *testing.T) {
	t.Parallel()
	for _, remaining := range []int{0, 1, 25, 1000} {
		tracker := domain.NewTracker()
		got := tracker.Observe("g", remaining)
		if got.Done != 0 || got.Total != remaining || got.Percent != 0 {
			t.Fatalf("remaining=%d: unexpected first snapshot %+v", remaining, got)
		}
		if got.Epoch != 1 || !got.Started {
			t.Fatalf("remaining=%d: expected first epoch, got %+v", remaining, got)
		}
	}
}

func TestPercentMonotonicWithinEpoch(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	last := -1.0
	for remaining := 40; remaining >= 0; remaining -= 3 {
		got := tracker.Observe("g", remaining)
		if got.Percent < last {
			t.Fatalf("percent decreased at remaining=%d: %.2f < %.2f", remaining, got.Percent, last)
		}
		if got.Percent < 0 || got.Percent > 100 {
			t.Fatalf("percent out of range: %.2f", got.Percent)
		}
		if got.Epoch != 1 {
			t.Fatalf("unexpected epoch change at remaining=%d", remaining)
		}
		last = got.Percent
	}
}

func TestGrowthAboveGoalResets(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Observe("g", 5)
	tracker.Observe("g", 2)
	got := tracker.Observe("g", 12)
	if got.Done != 0 || got.Total != 12 || got.Percent != 0 {
		t.Fatalf("expected reset to (0, 12, 0), got %+v", got)
	}
	if got.Epoch != 2 {
		t.Fatalf("expected epoch 2, got %d", got.Epoch)
	}
	if got.Done > got.Total {
		t.Fatalf("done exceeds total: %+v", got)
	}
}

func TestObserveIsIdempotent(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Observe("g", 9)
	first := tracker.Observe("g", 3)
	second := tracker.Observe("g", 3)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated observation changed output (-first +second):\n%s", diff)
	}
}

func TestGroupsAreIndependent(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Observe("a", 10)
	tracker.Observe("b", 4)
	a := tracker.Observe("a", 5)
	b := tracker.Observe("b", 4)
	if a.Percent != 50 || b.Percent != 0 {
		t.Fatalf("groups leaked into each other: a=%+v b=%+v", a, b)
	}
	if tracker.Groups() != 2 {
		t.Fatalf("expected 2 groups, got %d", tracker.Groups())
	}
}

func TestEmptyGoalReportsZeroPercent(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	got := tracker.Observe("empty", 0)
	if got.Percent != 0 || got.Total != 0 {
		t.Fatalf("expected zero snapshot, got %+v", got)
	}
	again := tracker.Observe("empty", 0)
	if again.Percent != 0 || again.Started {
		t.Fatalf("expected steady zero snapshot, got %+v", again)
	}
}

func TestCountsValidateAndRemaining(t *testing.T) {
	t.Parallel()
	c := domain.Counts{New: 3, Learning: 2, Review: 5}
	if c.Remaining() != 10 {
		t.Fatalf("expected 10 remaining, got %d", c.Remaining())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate counts: %v", err)
	}
	if err := (domain.Counts{Review: -1}).Validate(); err == nil {
		t.Fatalf("expected negative count error")
	}
}
