package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	overlayout "github.com/addielponce/anki-progress-circle/internal/modules/overlay/port/out"
)

// FileSurface publishes the overlay page as a file a webview can load.
type FileSurface struct {
	path string
}

func NewFileSurface(path string) overlayout.Surface {
	return &FileSurface{path: path}
}

func (s *FileSurface) Show(_ context.Context, page string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create overlay dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace overlay: %w", err)
	}
	return nil
}

func (s *FileSurface) Hide(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove overlay: %w", err)
	}
	return nil
}
