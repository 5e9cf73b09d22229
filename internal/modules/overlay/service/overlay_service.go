package service

import (
	"context"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/domain"
	overlayout "github.com/addielponce/anki-progress-circle/internal/modules/overlay/port/out"
)

type OverlayService struct {
	mu      sync.Mutex
	visible bool
	surface overlayout.Surface
	log     hclog.Logger
}

// NewOverlayService starts hidden. surface may be nil when frames are only
// returned to the caller.
func NewOverlayService(surface overlayout.Surface, log hclog.Logger) *OverlayService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &OverlayService{surface: surface, log: log.Named("overlay")}
}

func (s *OverlayService) Render(frame domain.Frame, style domain.Style) (string, error) {
	return domain.Render(frame, style)
}

func (s *OverlayService) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Toggle paints the frame and flips visibility.
func (s *OverlayService) Toggle(ctx context.Context, frame domain.Frame, style domain.Style) (bool, string, error) {
	svg, err := domain.Render(frame, style)
	if err != nil {
		return false, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible {
		if err := s.hideLocked(ctx); err != nil {
			return true, "", err
		}
		return false, svg, nil
	}
	if err := s.showLocked(ctx, svg); err != nil {
		return false, "", err
	}
	return true, svg, nil
}

// Redraw repaints only while the overlay is visible.
func (s *OverlayService) Redraw(ctx context.Context, frame domain.Frame, style domain.Style) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible {
		return false, "", nil
	}
	svg, err := domain.Render(frame, style)
	if err != nil {
		return false, "", err
	}
	if err := s.showLocked(ctx, svg); err != nil {
		return false, "", err
	}
	return true, svg, nil
}

func (s *OverlayService) Show(ctx context.Context, frame domain.Frame, style domain.Style) (string, error) {
	svg, err := domain.Render(frame, style)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.showLocked(ctx, svg); err != nil {
		return "", err
	}
	return svg, nil
}

func (s *OverlayService) Hide(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible {
		return nil
	}
	return s.hideLocked(ctx)
}

func (s *OverlayService) showLocked(ctx context.Context, svg string) error {
	if s.surface != nil {
		if err := s.surface.Show(ctx, domain.Document(svg)); err != nil {
			return err
		}
	}
	if !s.visible {
		s.log.Debug("overlay shown")
	}
	s.visible = true
	return nil
}

func (s *OverlayService) hideLocked(ctx context.Context) error {
	if s.surface != nil {
		if err := s.surface.Hide(ctx); err != nil {
			return err
		}
	}
	s.log.Debug("overlay hidden")
	s.visible = false
	return nil
}
