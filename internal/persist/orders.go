package persist

import (
	"context"

	"github.com/tinker-fit/checkout/internal/docstore"
	"github.com/tinker-fit/checkout/internal/domain"
	"github.com/tinker-fit/checkout/internal/linker"
)

// Orders persists orders in two phases: resolve the linked designs, then
// write the minimized form. Discount entries are minimized to ids without
// validation here; checkout revalidates them against the store before any
// money moves.
type Orders struct {
	coll    *docstore.Collection[domain.StoredOrder]
	designs *Designs
}

func NewOrders(coll *docstore.Collection[domain.StoredOrder], designs *Designs) *Orders {
	return &Orders{
		coll:    coll,
		designs: designs,
	}
}

// Get reads an order; linked fields come back as id references.
func (o *Orders) Get(ctx context.Context, id string) (*domain.Order, error) {
	stored, err := o.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored.Order(), nil
}

// Persist resolves the order's designs, writes the minimized order at the
// given id (or a fresh one when id is empty), and returns the hydrated
// order with the new identity stamp. A failure in either phase aborts the
// whole operation; design writes that already landed are not undone.
func (o *Orders) Persist(ctx context.Context, order *domain.Order, id string) (*domain.Order, error) {
	resolved, err := linker.ResolveRefs[domain.Design, *domain.Design](ctx, order.Wheelchairs, o.designs)
	if err != nil {
		return nil, err
	}
	order.Wheelchairs = resolved

	min := linker.MinimizeOrder(order)
	meta, err := o.coll.Insert(ctx, &min, id)
	if err != nil {
		return nil, err
	}
	order.Stamp(meta.ID, meta.Rev)
	return order, nil
}

// Insert adapts Persist to the linker store contract so user link
// resolution persists orders, and their designs, transitively.
func (o *Orders) Insert(ctx context.Context, order *domain.Order, id string) (domain.Meta, error) {
	persisted, err := o.Persist(ctx, order, id)
	if err != nil {
		return domain.Meta{}, err
	}
	return domain.Meta{ID: persisted.ID, Rev: persisted.Rev}, nil
}
