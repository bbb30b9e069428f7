// Package discounts revalidates order discounts against the store at
// checkout time, before any money moves.
package discounts

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinker-fit/checkout/internal/domain"
)

// Store is the read surface the validator checks ids against.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Discount, error)
}

// Validator checks that every referenced discount exists and is currently
// valid. Ids are checked concurrently; the result is aggregate only, with
// no per-id attribution.
type Validator struct {
	store   Store
	nowFunc func() time.Time
}

func NewValidator(store Store) *Validator {
	return &Validator{
		store:   store,
		nowFunc: time.Now,
	}
}

// Validate returns (false, nil) when any id is missing or invalid, and a
// non-nil error only for store failures.
func (v *Validator) Validate(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	var invalid atomic.Bool
	now := v.nowFunc()

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			d, err := v.store.Get(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					invalid.Store(true)
					return nil
				}
				return err
			}
			if !d.Valid(now) {
				invalid.Store(true)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	return !invalid.Load(), nil
}
