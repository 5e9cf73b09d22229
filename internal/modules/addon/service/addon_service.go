package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
	addonout "github.com/addielponce/anki-progress-circle/internal/modules/addon/port/out"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
)

type AddonService struct {
	store addonout.ManifestStore
	host  addonout.Host
	log   hclog.Logger
}

func NewAddonService(store addonout.ManifestStore, host addonout.Host, log hclog.Logger) *AddonService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &AddonService{store: store, host: host, log: log.Named("addon")}
}

func (s *AddonService) List(ctx context.Context) ([]dto.AddonInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddonInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.AddonInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Hooks: m.Hooks})
	}
	return out, nil
}

func (s *AddonService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *AddonService) Menu(ctx context.Context, addonName string) (domain.Menu, error) {
	manifest, err := s.getRunnableManifest(ctx, addonName, "main_window_did_init")
	if err != nil {
		return domain.Menu{}, err
	}
	return s.host.Menu(ctx, manifest)
}

func (s *AddonService) Dispatch(ctx context.Context, addonName string, event domain.Event) (domain.Frame, error) {
	manifest, err := s.getRunnableManifest(ctx, addonName, event.Kind)
	if err != nil {
		return domain.Frame{}, err
	}
	frame, err := s.host.Dispatch(ctx, manifest, event)
	if err != nil {
		return domain.Frame{}, err
	}
	s.log.Debug("dispatched", "addon", addonName, "event", event.Kind, "refreshed", frame.Refreshed)
	return frame, nil
}

func (s *AddonService) Toggle(ctx context.Context, addonName string, queue *domain.Queue) (domain.Frame, error) {
	manifest, err := s.getRunnableManifest(ctx, addonName, "")
	if err != nil {
		return domain.Frame{}, err
	}
	return s.host.Toggle(ctx, manifest, queue)
}

func (s *AddonService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate add-on name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *AddonService) getRunnableManifest(ctx context.Context, addonName, hook string) (domain.Manifest, error) {
	if s.host == nil {
		return domain.Manifest{}, fmt.Errorf("%w: no add-on host configured", apperrors.ErrInvalidInput)
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == addonName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("%w: add-on %q", apperrors.ErrNotFound, addonName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrAddonDisabled, addonName)
	}
	if hook != "" && !manifest.Handles(hook) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrHookMissing, hook)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrAddonTimeout, addonName)
		}
		return domain.Manifest{}, err
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read add-on binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
