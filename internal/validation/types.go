package validation

import "github.com/tinker-fit/checkout/internal/domain"

// OrderRequest is the payload for POST /order. Token is the opaque
// client-side gateway token; it never contains card details.
type OrderRequest struct {
	Order *domain.Order `json:"order" validate:"required"`
	Token string        `json:"token"`
}

// SaveRequest is the payload for POST /save.
type SaveRequest struct {
	Wheelchair *domain.Design `json:"wheelchair" validate:"required"`
}
