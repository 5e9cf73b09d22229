package out

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs add-on binaries. A host may keep an add-on process alive
// between calls so its progress state survives; Close stops them all.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Menu(ctx context.Context, manifest domain.Manifest) (domain.Menu, error)
	Dispatch(ctx context.Context, manifest domain.Manifest, event domain.Event) (domain.Frame, error)
	Toggle(ctx context.Context, manifest domain.Manifest, queue *domain.Queue) (domain.Frame, error)
	Close()
}
