package persist

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tinker-fit/checkout/internal/docstore"
	"github.com/tinker-fit/checkout/internal/domain"
	"github.com/tinker-fit/checkout/internal/linker"
)

// Users persists users. Link resolution fans out concurrently over the
// three linked fields: order history, saved designs, and the cart.
type Users struct {
	coll    *docstore.Collection[domain.StoredUser]
	orders  *Orders
	designs *Designs
}

func NewUsers(coll *docstore.Collection[domain.StoredUser], orders *Orders, designs *Designs) *Users {
	return &Users{
		coll:    coll,
		orders:  orders,
		designs: designs,
	}
}

// Get reads a user; linked fields come back as id references and a stored
// null cart stays nil.
func (u *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	stored, err := u.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored.User(), nil
}

// Persist resolves the user's three linked fields concurrently, writes the
// minimized user at the given id (or a fresh one), and returns the
// hydrated user with the new identity stamp. The cart supports a nil
// passthrough meaning "no cart". Orders resolve through Orders.Persist, so
// their designs persist transitively.
func (u *Users) Persist(ctx context.Context, user *domain.User, id string) (*domain.User, error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resolved, err := linker.ResolveRefs[domain.Order, *domain.Order](gctx, user.Orders, u.orders)
		if err != nil {
			return err
		}
		user.Orders = resolved
		return nil
	})

	g.Go(func() error {
		resolved, err := linker.ResolveRefs[domain.Design, *domain.Design](gctx, user.SavedDesigns, u.designs)
		if err != nil {
			return err
		}
		user.SavedDesigns = resolved
		return nil
	})

	g.Go(func() error {
		if user.Cart == nil {
			return nil
		}
		resolved, err := linker.ResolveRefs[domain.Order, *domain.Order](gctx, []domain.Ref[domain.Order]{*user.Cart}, u.orders)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrBadCartValue, err)
		}
		user.Cart = &resolved[0]
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	min := linker.MinimizeUser(user)
	meta, err := u.coll.Insert(ctx, &min, id)
	if err != nil {
		return nil, err
	}
	user.Stamp(meta.ID, meta.Rev)
	return user, nil
}
