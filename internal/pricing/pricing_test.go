package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tinker-fit/checkout/internal/domain"
)

func chair(prices ...float64) *domain.Design {
	d := &domain.Design{FrameID: 1}
	for i, p := range prices {
		d.Parts = append(d.Parts, domain.Part{PartID: i + 1, Price: p})
	}
	return d
}

func TestChairTotal_SumsPartPrices(t *testing.T) {
	calc := NewStandard()

	total, err := calc.ChairTotal(chair(650, 120.50, 29.99))
	if err != nil {
		t.Fatalf("chair total: %v", err)
	}
	want := decimal.NewFromFloat(800.49)
	if !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestChairTotal_InvalidConfigurations(t *testing.T) {
	calc := NewStandard()

	cases := []struct {
		name   string
		design *domain.Design
	}{
		{"nil design", nil},
		{"no parts", &domain.Design{FrameID: 1}},
		{"negative part price", chair(650, -1)},
		{"all zero prices", chair(0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := calc.ChairTotal(tc.design); !errors.Is(err, ErrInvalidChair) {
				t.Fatalf("expected ErrInvalidChair, got %v", err)
			}
		})
	}
}

func TestOrderTotal_SubtotalTaxShipping(t *testing.T) {
	calc := NewStandard()
	order := &domain.Order{
		Wheelchairs: []domain.Ref[domain.Design]{
			domain.DocRef(chair(650)),
			domain.DocRef(chair(100, 50)),
		},
	}

	totals, err := calc.OrderTotal(order)
	if err != nil {
		t.Fatalf("order total: %v", err)
	}
	if !totals.Subtotal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("subtotal = %s, want 800", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("tax = %s, want 50", totals.Tax)
	}
	if !totals.Shipping.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("shipping = %s, want 15", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.NewFromInt(865)) {
		t.Fatalf("total = %s, want 865", totals.Total)
	}
}

func TestOrderTotal_TaxRoundsToCents(t *testing.T) {
	calc := NewStandard()
	order := &domain.Order{
		Wheelchairs: []domain.Ref[domain.Design]{
			domain.DocRef(chair(99.99)),
		},
	}

	totals, err := calc.OrderTotal(order)
	if err != nil {
		t.Fatalf("order total: %v", err)
	}
	// tax = round(6.249375, 2) = 6.25
	if !totals.Tax.Equal(decimal.NewFromFloat(6.25)) {
		t.Fatalf("tax = %s, want 6.25", totals.Tax)
	}
	want := decimal.NewFromFloat(121.24)
	if !totals.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", totals.Total, want)
	}
}

func TestOrderTotal_RejectsUnresolvedEntries(t *testing.T) {
	calc := NewStandard()
	order := &domain.Order{
		Wheelchairs: []domain.Ref[domain.Design]{
			domain.IDRef[domain.Design]("design-1"),
		},
	}
	if _, err := calc.OrderTotal(order); !errors.Is(err, ErrInvalidChair) {
		t.Fatalf("expected ErrInvalidChair for id-only entry, got %v", err)
	}
}

func TestOrderTotal_EmptyOrderInvalid(t *testing.T) {
	calc := NewStandard()
	if _, err := calc.OrderTotal(&domain.Order{}); !errors.Is(err, ErrInvalidChair) {
		t.Fatalf("expected ErrInvalidChair, got %v", err)
	}
}

func TestCents(t *testing.T) {
	if got := Cents(decimal.NewFromFloat(121.24)); got != 12124 {
		t.Fatalf("cents = %d, want 12124", got)
	}
	if got := Cents(decimal.NewFromFloat(0.005)); got != 1 {
		t.Fatalf("cents = %d, want 1", got)
	}
}
