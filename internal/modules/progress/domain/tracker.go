package domain

import "sync"

// Snapshot is the tracker's answer for one observation of a group.
type Snapshot struct {
	GroupID   string
	Remaining int
	Done      int
	Total     int
	Percent   float64
	// Epoch counts goal resets for the group, starting at 1.
	Epoch int
	// Started is true when this observation set a new goal.
	Started bool
}

// Zero is what callers show when the host has no open collection.
func Zero() Snapshot {
	return Snapshot{}
}

// Tracker keeps session-relative progress per group for the lifetime of the
// process. Entries are created on first observation and never removed.
type Tracker struct {
	mu    sync.Mutex
	goal  map[string]int
	done  map[string]int
	epoch map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		goal:  map[string]int{},
		done:  map[string]int{},
		epoch: map[string]int{},
	}
}

// Observe records the live remaining count for a group. When the remaining
// count grows past what was outstanding at the previous observation (cards
// were added mid-session) the group starts a new epoch at zero progress.
func (t *Tracker) Observe(groupID string, remaining int) Snapshot {
	if remaining < 0 {
		remaining = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	started := false
	goal, seen := t.goal[groupID]
	if !seen {
		goal = remaining
		t.done[groupID] = 0
		started = true
	} else {
		outstanding := goal - t.done[groupID]
		if remaining > outstanding {
			goal = remaining
			t.done[groupID] = 0
			started = true
		} else {
			t.done[groupID] = goal - remaining
		}
	}
	t.goal[groupID] = goal
	if started {
		t.epoch[groupID]++
	}

	done := t.done[groupID]
	return Snapshot{
		GroupID:   groupID,
		Remaining: remaining,
		Done:      done,
		Total:     goal,
		Percent:   Percent(done, goal),
		Epoch:     t.epoch[groupID],
		Started:   started,
	}
}

// Groups returns how many groups have been observed so far.
func (t *Tracker) Groups() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.goal)
}

func Percent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
