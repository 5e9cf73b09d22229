package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	settingsout "github.com/addielponce/anki-progress-circle/internal/modules/settings/adapter/out"
)

func TestFileStoreLoadsBundledDefaults(t *testing.T) {
	t.Parallel()
	store := settingsout.NewFileStore(t.TempDir())
	values, err := store.Load(context.Background(), "progress_circle")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if values["main_color"] != "#32cd32" || values["stroke_linecap"] != "round" {
		t.Fatalf("unexpected defaults: %+v", values)
	}
	if values["back_color_opacity"] != 35 {
		t.Fatalf("expected int opacity 35, got %#v", values["back_color_opacity"])
	}
}

func TestFileStoreUserValuesOverrideDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := settingsout.NewFileStore(dir)
	ctx := context.Background()
	values, err := store.Load(ctx, "pkg")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	values["main_color"] = "#ff0000"
	values["main_color_opacity"] = 40
	values["extra"] = "kept"
	if err := store.Write(ctx, "pkg", values); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "pkg", "config.yaml"))
	if err != nil {
		t.Fatalf("read written yaml: %v", err)
	}
	if !strings.Contains(string(raw), "#ff0000") {
		t.Fatalf("expected yaml to carry main color, got:\n%s", raw)
	}

	again, err := store.Load(ctx, "pkg")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again["main_color"] != "#ff0000" || again["main_color_opacity"] != 40 || again["extra"] != "kept" {
		t.Fatalf("unexpected reloaded values: %+v", again)
	}
	if again["back_color"] != "#3c3c3c" {
		t.Fatalf("defaults should fill untouched keys, got %+v", again)
	}
}

func TestFileStorePackageDefaultsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "other"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other", "config.json"), []byte("null"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	store := settingsout.NewFileStore(dir)
	defaults, err := store.Defaults(context.Background(), "other")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if len(defaults) != 0 {
		t.Fatalf("expected no defaults, got %+v", defaults)
	}
}

func TestFileStoreRejectsBrokenYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pkg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pkg", "config.yaml"), []byte("main_color: [unclosed"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if _, err := settingsout.NewFileStore(dir).Load(context.Background(), "pkg"); err == nil {
		t.Fatalf("expected decode error")
	}
}
