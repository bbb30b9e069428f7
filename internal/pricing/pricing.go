// Package pricing computes server-side totals. Client-sent totals are
// never trusted; checkout recomputes everything from the embedded design
// data.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tinker-fit/checkout/internal/domain"
)

var ErrInvalidChair = errors.New("invalid chair configuration")

// Totals is the full server-side price breakdown of an order. Checkout
// stamps every component onto the persisted order so the stored document
// and the invoice always agree with the charged amount.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Calculator is the price-calculation collaborator. Implementations must
// fail, not guess, when a configuration cannot be priced.
type Calculator interface {
	ChairTotal(d *domain.Design) (decimal.Decimal, error)
	OrderTotal(o *domain.Order) (Totals, error)
}

// Standard prices a chair as the sum of its part prices and an order as
// subtotal plus flat-rate tax plus a shipping fee.
type Standard struct {
	TaxRate     decimal.Decimal
	ShippingFee decimal.Decimal
}

func NewStandard() *Standard {
	return &Standard{
		TaxRate:     decimal.NewFromFloat(0.0625),
		ShippingFee: decimal.NewFromInt(15),
	}
}

// ChairTotal cross-checks every part and sums their prices. A chair with
// no parts or any negative part price is invalid.
func (s *Standard) ChairTotal(d *domain.Design) (decimal.Decimal, error) {
	if d == nil || len(d.Parts) == 0 {
		return decimal.Zero, ErrInvalidChair
	}
	total := decimal.Zero
	for _, p := range d.Parts {
		price := decimal.NewFromFloat(p.Price)
		if price.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: part %d has negative price", ErrInvalidChair, p.PartID)
		}
		total = total.Add(price)
	}
	if !total.IsPositive() {
		return decimal.Zero, ErrInvalidChair
	}
	return total, nil
}

// OrderTotal prices an order strictly from its embedded designs. Entries
// that are bare id references cannot be priced and make the order invalid;
// the caller must submit hydrated designs.
func (s *Standard) OrderTotal(o *domain.Order) (Totals, error) {
	if o == nil || len(o.Wheelchairs) == 0 {
		return Totals{}, ErrInvalidChair
	}
	subtotal := decimal.Zero
	for _, ref := range o.Wheelchairs {
		if ref.Kind() != domain.RefDoc {
			return Totals{}, fmt.Errorf("%w: order entry is not an embedded design", ErrInvalidChair)
		}
		chair, err := s.ChairTotal(ref.Doc())
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(chair)
	}
	tax := subtotal.Mul(s.TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: s.ShippingFee,
		Total:    subtotal.Add(tax).Add(s.ShippingFee),
	}, nil
}

// Cents converts a decimal amount to gateway cents.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
