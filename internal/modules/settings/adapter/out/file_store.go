package out

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	settingsout "github.com/addielponce/anki-progress-circle/internal/modules/settings/port/out"
)

//go:embed config.json
var bundledDefaults []byte

// FileStore lays packages out the way the host does: defaults in
// <addons>/<pkg>/config.json (the bundled file when absent) and user values
// in <addons>/<pkg>/config.yaml.
type FileStore struct {
	addonsDir string
}

func NewFileStore(addonsDir string) settingsout.Store {
	return &FileStore{addonsDir: addonsDir}
}

func (s *FileStore) Load(ctx context.Context, pkg string) (map[string]any, error) {
	defaults, err := s.Defaults(ctx, pkg)
	if err != nil {
		return nil, err
	}
	merged := map[string]any{}
	maps.Copy(merged, defaults)

	payload, err := os.ReadFile(s.userPath(pkg))
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, fmt.Errorf("read %s config: %w", pkg, err)
	}
	user := map[string]any{}
	if err := yaml.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", pkg, err)
	}
	maps.Copy(merged, user)
	return merged, nil
}

func (s *FileStore) Write(_ context.Context, pkg string, values map[string]any) error {
	path := s.userPath(pkg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s config dir: %w", pkg, err)
	}
	payload, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s config: %w", pkg, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write %s config: %w", pkg, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s config: %w", pkg, err)
	}
	return nil
}

func (s *FileStore) Defaults(_ context.Context, pkg string) (map[string]any, error) {
	payload, err := os.ReadFile(filepath.Join(s.addonsDir, pkg, "config.json"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s defaults: %w", pkg, err)
		}
		payload = bundledDefaults
	}
	var defaults map[string]any
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&defaults); err != nil {
		return nil, fmt.Errorf("decode %s defaults: %w", pkg, err)
	}
	return normalizeNumbers(defaults), nil
}

func (s *FileStore) userPath(pkg string) string {
	return filepath.Join(s.addonsDir, pkg, "config.yaml")
}

// normalizeNumbers turns json.Number into int when whole, float64 otherwise,
// matching what yaml.v3 yields for user values.
func normalizeNumbers(values map[string]any) map[string]any {
	for key, value := range values {
		number, ok := value.(json.Number)
		if !ok {
			continue
		}
		if n, err := number.Int64(); err == nil {
			values[key] = int(n)
			continue
		}
		if f, err := number.Float64(); err == nil {
			values[key] = f
		}
	}
	return values
}
