package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrIDExhausted is returned when the allocator cannot find a free id
// within its retry budget. With UUID candidates this effectively never
// happens; the check exists because generated ids must be collision-free
// within their collection.
var ErrIDExhausted = errors.New("could not allocate a unique id")

// Allocator produces fresh identifiers scoped to one collection, verified
// absent before use.
type Allocator struct {
	exists      func(ctx context.Context, id string) (bool, error)
	maxAttempts int
}

// NewAllocator builds an allocator over a collection's existence check.
func NewAllocator(exists func(ctx context.Context, id string) (bool, error)) *Allocator {
	return &Allocator{
		exists:      exists,
		maxAttempts: 5,
	}
}

// Generate returns an id not currently present in the collection.
func (a *Allocator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < a.maxAttempts; i++ {
		id := uuid.NewString()
		taken, err := a.exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
