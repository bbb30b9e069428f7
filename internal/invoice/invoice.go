// Package invoice generates the invoice artifact attached to checkout
// emails. Rendering internals are a collaborator detail; the default
// generator writes a plain-text artifact and returns its path.
package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tinker-fit/checkout/internal/domain"
)

// Generator produces an invoice artifact for a numbered order.
type Generator interface {
	Generate(ctx context.Context, o *domain.Order) (string, error)
}

// TextGenerator writes invoices as text files under a directory,
// defaulting to the system temp dir.
type TextGenerator struct {
	Dir string
}

func NewTextGenerator() *TextGenerator {
	return &TextGenerator{Dir: os.TempDir()}
}

func (g *TextGenerator) Generate(ctx context.Context, o *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Per4max Purchase Invoice\n")
	if o.OrderNum > 0 {
		fmt.Fprintf(&b, "Order #%d\n", o.OrderNum)
	}
	fmt.Fprintf(&b, "Payment method: %s\n\n", o.PayMethod)

	for i, ref := range o.Wheelchairs {
		d := ref.Doc()
		if d == nil {
			continue
		}
		title := d.Title
		if title == "" {
			title = fmt.Sprintf("Wheelchair %d", i+1)
		}
		fmt.Fprintf(&b, "%s: $%.2f\n", title, d.CalcPrice)
	}

	fmt.Fprintf(&b, "\nSubtotal: $%.2f\n", o.Subtotal)
	fmt.Fprintf(&b, "Tax:      $%.2f\n", o.Tax)
	fmt.Fprintf(&b, "Shipping: $%.2f\n", o.Shipping)
	fmt.Fprintf(&b, "Total:    $%.2f\n", o.Total)

	name := fmt.Sprintf("invoice-%s.txt", uuid.NewString())
	if o.OrderNum > 0 {
		name = fmt.Sprintf("invoice-%d.txt", o.OrderNum)
	}
	path := filepath.Join(g.Dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return path, nil
}
