// Package linker resolves link-field entries against the document store
// and produces the minimized forms that actually get persisted.
package linker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tinker-fit/checkout/internal/domain"
)

// Store is the narrow persistence surface the linker resolves against.
// Insert with an empty id creates a new document.
type Store[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, doc *T, id string) (domain.Meta, error)
}

// ResolveRefs resolves a batch of link-field entries:
//
//   - a document with a valid id is updated in place and its rev refreshed
//   - a document without an id is created and stamped with fresh identity
//   - a bare id is a read-through reference; the stored value is returned
//   - anything else fails the whole batch with the offending value named
//
// Entries resolve concurrently and the batch fails as a whole on the first
// error. There is no partial-success reporting: entries that landed in the
// store before the failing one stay written.
func ResolveRefs[T any, P interface {
	*T
	domain.Doc
}](ctx context.Context, refs []domain.Ref[T], st Store[T]) ([]domain.Ref[T], error) {
	out := make([]domain.Ref[T], len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			resolved, err := resolveRef[T, P](gctx, ref, st)
			if err != nil {
				return err
			}
			out[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveRef[T any, P interface {
	*T
	domain.Doc
}](ctx context.Context, ref domain.Ref[T], st Store[T]) (domain.Ref[T], error) {
	switch ref.Kind() {
	case domain.RefDoc:
		doc := ref.Doc()
		meta, err := st.Insert(ctx, doc, P(doc).DocID())
		if err != nil {
			return domain.Ref[T]{}, err
		}
		P(doc).Stamp(meta.ID, meta.Rev)
		return ref, nil

	case domain.RefID:
		doc, err := st.Get(ctx, ref.ID())
		if err != nil {
			return domain.Ref[T]{}, err
		}
		return ref.WithDoc(doc), nil

	default:
		return domain.Ref[T]{}, &domain.InvalidEntryError{Raw: ref.Raw()}
	}
}

// EntryID extracts the identifier of a resolved or reference entry, empty
// when it cannot be determined.
func EntryID[T any, P interface {
	*T
	domain.Doc
}](ref domain.Ref[T]) string {
	switch ref.Kind() {
	case domain.RefDoc:
		return P(ref.Doc()).DocID()
	case domain.RefID:
		return ref.ID()
	default:
		return ""
	}
}
