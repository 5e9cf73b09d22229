package out

import "context"

// Surface is where a rendered page is shown.
type Surface interface {
	Show(ctx context.Context, page string) error
	Hide(ctx context.Context) error
}
