// Package persist implements entity persistence over the document store:
// link resolution first, then a minimized write, returning the hydrated
// entity with its identity stamp merged in.
package persist

import (
	"context"
	"fmt"

	"github.com/tinker-fit/checkout/internal/docstore"
	"github.com/tinker-fit/checkout/internal/domain"
)

// Designs persists wheelchair designs. Creation is a special case: the id
// must come from the unique-id allocator rather than the store's own id
// generation, so a new design first obtains an id and then inserts under
// it.
type Designs struct {
	coll *docstore.Collection[domain.Design]
	ids  *docstore.Allocator
}

func NewDesigns(coll *docstore.Collection[domain.Design], ids *docstore.Allocator) *Designs {
	return &Designs{
		coll: coll,
		ids:  ids,
	}
}

func (d *Designs) Get(ctx context.Context, id string) (*domain.Design, error) {
	return d.coll.Get(ctx, id)
}

// Insert writes a design at the given id, allocating one first when id is
// empty. Satisfies the linker store contract for design link fields.
func (d *Designs) Insert(ctx context.Context, design *domain.Design, id string) (domain.Meta, error) {
	if id == "" {
		generated, err := d.ids.Generate(ctx)
		if err != nil {
			return domain.Meta{}, fmt.Errorf("allocate design id: %w", err)
		}
		id = generated
	}
	return d.coll.Insert(ctx, design, id)
}
