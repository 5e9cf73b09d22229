package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	addonout "github.com/addielponce/anki-progress-circle/internal/modules/addon/adapter/out"
	"github.com/addielponce/anki-progress-circle/internal/modules/addon/domain"
	"github.com/addielponce/anki-progress-circle/internal/platform/logging"
)

func TestGRPCHostIntegrationProgressCircle(t *testing.T) {
	binPath, checksum := buildProgressCircleAddon(t)
	t.Setenv("PROGRESS_CIRCLE_DATA", t.TempDir())
	manifest := domain.Manifest{
		Name:    "progress-circle",
		Version: "1.2.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Hooks:   domain.Hooks,
	}

	host := addonout.NewGRPCHost(logging.Discard())
	defer host.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "progress-circle" || len(metadata.Hooks) != 3 {
		t.Fatalf("unexpected metadata: %#v", metadata)
	}
	menu, err := host.Menu(ctx, manifest)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if len(menu.Actions) != 2 {
		t.Fatalf("expected two menu actions, got %#v", menu)
	}

	shown, err := host.Toggle(ctx, manifest, &domain.Queue{DeckID: "A", New: 10, HasCollection: true})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !shown.Visible || shown.Done != 0 || shown.Total != 10 {
		t.Fatalf("unexpected toggle frame: %#v", shown)
	}

	// The add-on process keeps its tracker between calls.
	frame, err := host.Dispatch(ctx, manifest, domain.Event{
		Kind:  "reviewer_did_show_question",
		Queue: &domain.Queue{DeckID: "A", New: 4, HasCollection: true},
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !frame.Refreshed || frame.Done != 6 || frame.Total != 10 || frame.Percent != 60 {
		t.Fatalf("unexpected dispatch frame: %#v", frame)
	}
	if !strings.Contains(frame.Markup, "<title>6/10</title>") {
		t.Fatalf("expected markup title, got %q", frame.Markup)
	}
}

func buildProgressCircleAddon(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "progress-circle-addon")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/progress-circle")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build add-on: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built add-on: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
