package domain

import "time"

// Discount is a promotional adjustment. Orders reference discounts by id
// only; validity is re-checked against the store at checkout time.
type Discount struct {
	ID      string    `json:"id,omitempty" dynamodbav:"_id,omitempty"`
	Rev     string    `json:"rev,omitempty" dynamodbav:"_rev,omitempty"`
	Code    string    `json:"code" dynamodbav:"code"`
	Percent float64   `json:"percent" dynamodbav:"percent"`
	Active  bool      `json:"active" dynamodbav:"active"`
	Expires time.Time `json:"expires,omitempty" dynamodbav:"expires,omitempty"`
}

func (d *Discount) DocID() string { return d.ID }

func (d *Discount) Stamp(id, rev string) {
	if id != "" {
		d.ID = id
	}
	d.Rev = rev
}

// Valid reports whether the discount can be applied at the given instant.
func (d *Discount) Valid(now time.Time) bool {
	if !d.Active {
		return false
	}
	return d.Expires.IsZero() || d.Expires.After(now)
}
