package domain

import "time"

// Order payment methods accepted at checkout. Only credit card payments
// reach the gateway; everything else is settled out of band.
const (
	PayMethodCreditCard = "Credit Card"
	PayMethodCheck      = "Check"
)

// Order is the hydrated form of an order: link fields may hold full child
// documents or bare id references, depending on what the client sent and
// how far resolution has progressed. Only the minimized StoredOrder form
// is ever written to the store.
type Order struct {
	ID          string          `json:"id,omitempty"`
	Rev         string          `json:"rev,omitempty"`
	Email       string          `json:"email,omitempty"`
	Wheelchairs []Ref[Design]   `json:"wheelchairs"`
	Discounts   []Ref[Discount] `json:"discounts"`
	Subtotal    float64         `json:"subtotal,omitempty"`
	Tax         float64         `json:"tax,omitempty"`
	Shipping    float64         `json:"shipping,omitempty"`
	Total       float64         `json:"total,omitempty"`
	PayMethod   string          `json:"payMethod"`
	Sent        bool            `json:"sent"`
	SentDate    time.Time       `json:"sentDate,omitempty"`
	OrderNum    int             `json:"orderNum,omitempty"`
}

func (o *Order) DocID() string { return o.ID }

func (o *Order) Stamp(id, rev string) {
	if id != "" {
		o.ID = id
	}
	o.Rev = rev
}

// StoredOrder is the storage form of an Order: linked collections are id
// arrays, never embedded documents.
type StoredOrder struct {
	ID          string    `dynamodbav:"_id,omitempty"`
	Rev         string    `dynamodbav:"_rev,omitempty"`
	Email       string    `dynamodbav:"email,omitempty"`
	Wheelchairs []string  `dynamodbav:"wheelchairs"`
	Discounts   []string  `dynamodbav:"discounts"`
	Subtotal    float64   `dynamodbav:"subtotal,omitempty"`
	Tax         float64   `dynamodbav:"tax,omitempty"`
	Shipping    float64   `dynamodbav:"shipping,omitempty"`
	Total       float64   `dynamodbav:"total,omitempty"`
	PayMethod   string    `dynamodbav:"payMethod"`
	Sent        bool      `dynamodbav:"sent"`
	SentDate    time.Time `dynamodbav:"sentDate,omitempty"`
	OrderNum    int       `dynamodbav:"orderNum,omitempty"`
}

// Order converts the stored form back to the hydrated shape, with link
// fields holding id references. Children stay references until a caller
// resolves them.
func (s *StoredOrder) Order() *Order {
	o := &Order{
		ID:        s.ID,
		Rev:       s.Rev,
		Email:     s.Email,
		Subtotal:  s.Subtotal,
		Tax:       s.Tax,
		Shipping:  s.Shipping,
		Total:     s.Total,
		PayMethod: s.PayMethod,
		Sent:      s.Sent,
		SentDate:  s.SentDate,
		OrderNum:  s.OrderNum,
	}
	o.Wheelchairs = make([]Ref[Design], 0, len(s.Wheelchairs))
	for _, id := range s.Wheelchairs {
		o.Wheelchairs = append(o.Wheelchairs, IDRef[Design](id))
	}
	o.Discounts = make([]Ref[Discount], 0, len(s.Discounts))
	for _, id := range s.Discounts {
		o.Discounts = append(o.Discounts, IDRef[Discount](id))
	}
	return o
}
