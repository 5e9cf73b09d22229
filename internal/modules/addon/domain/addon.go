package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// Hooks are the host lifecycle events an add-on may subscribe to.
var Hooks = []string{"state_did_change", "reviewer_did_show_question", "main_window_did_init"}

var (
	ErrAddonDisabled    = errors.New("add-on is disabled")
	ErrChecksumMismatch = errors.New("add-on checksum mismatch")
	ErrHookMissing      = errors.New("add-on does not handle hook")
	ErrAddonTimeout     = errors.New("add-on timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	SHA256  string   `json:"sha256"`
	Enabled bool     `json:"enabled"`
	Hooks   []string `json:"hooks"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("add-on name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("add-on version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("add-on binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("add-on sha256 must be lowercase 64-char hex")
	}
	if len(m.Hooks) == 0 {
		return fmt.Errorf("add-on hooks are required")
	}
	seen := map[string]struct{}{}
	for _, hook := range m.Hooks {
		if !slices.Contains(Hooks, hook) {
			return fmt.Errorf("unknown hook: %s", hook)
		}
		if _, ok := seen[hook]; ok {
			return fmt.Errorf("duplicate hook: %s", hook)
		}
		seen[hook] = struct{}{}
	}
	return nil
}

func (m Manifest) Handles(hook string) bool {
	return slices.Contains(m.Hooks, hook)
}

type Metadata struct {
	Name    string
	Version string
	Hooks   []string
}

type Queue struct {
	DeckID        string
	New           int
	Learning      int
	Review        int
	HasCollection bool
}

type Event struct {
	Kind     string
	State    string
	OldState string
	Queue    *Queue
}

type MenuAction struct {
	ID    string
	Label string
}

type Menu struct {
	Title   string
	Actions []MenuAction
}

type Frame struct {
	Visible   bool
	Refreshed bool
	Markup    string
	Done      int
	Total     int
	Percent   float64
	Menu      *Menu
}
