package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/tinker-fit/checkout/internal/domain"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// A credit card order without a gateway token can never charge;
	// reject it before the pipeline starts.
	v.RegisterStructValidation(orderRequestStructValidation, OrderRequest{})

	return v
}

func orderRequestStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(OrderRequest)
	if req.Order == nil {
		return
	}

	if req.Order.PayMethod == "" {
		sl.ReportError(req.Order.PayMethod, "order.payMethod", "PayMethod", "required", "")
	}
	if req.Order.PayMethod == domain.PayMethodCreditCard && req.Token == "" {
		sl.ReportError(req.Token, "token", "Token", "required_for_credit_card", "")
	}
}
