package core

import "context"

// PropertyStore is a small JSON key/value bag for worker checkpoints.
type PropertyStore interface {
	Get(ctx context.Context, key string, value any) error
	Set(ctx context.Context, key string, value any) error
}
