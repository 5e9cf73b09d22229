package out

import "context"

// Store is the host's per-package configuration store.
type Store interface {
	// Load returns the package defaults overlaid with the user's values.
	Load(ctx context.Context, pkg string) (map[string]any, error)
	Write(ctx context.Context, pkg string, values map[string]any) error
	// Defaults returns nil when the package ships no defaults.
	Defaults(ctx context.Context, pkg string) (map[string]any, error)
}
