// Package sequence hands out monotonically increasing serial numbers per key.
package sequence

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("sequence key is required")

// Counter returns the next value of the sequence named key, starting at 1.
// Implementations must be safe for concurrent use.
type Counter interface {
	Next(ctx context.Context, key string) (int64, error)
}
