package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	addonout "github.com/addielponce/anki-progress-circle/internal/modules/addon/adapter/out"
)

func writeManifests(t *testing.T, base, raw string) {
	t.Helper()
	addonsDir := filepath.Join(base, "addons")
	if err := os.MkdirAll(addonsDir, 0o755); err != nil {
		t.Fatalf("mkdir addons: %v", err)
	}
	if err := os.WriteFile(filepath.Join(addonsDir, "addons.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write addons.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := addonout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeManifests(t, base, `[
  {
    "name": "progress-circle",
    "version": "1.2.0",
    "binary": "addons/progress_circle/progress-circle",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "hooks": ["state_did_change"]
  }
]`)
	manifests, err := addonout.NewFileManifestStore(base).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(base, "addons", "progress_circle", "progress-circle")
	if manifests[0].Binary != want {
		t.Fatalf("expected binary %s, got %s", want, manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeManifests(t, base, `[
  {
    "name": "progress-circle",
    "version": "1.2.0",
    "binary": "/tmp/progress-circle",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "hooks": ["state_did_change"],
    "capabilities": ["command"]
  }
]`)
	if _, err := addonout.NewFileManifestStore(base).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
