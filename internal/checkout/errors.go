package checkout

import "net/http"

// Class partitions checkout failures by where in the pipeline they occur
// and what the caller can conclude about side effects.
type Class int

const (
	// ClassValidation: bad total or invalid discounts. Zero side effects.
	ClassValidation Class = iota
	// ClassGateway: the charge was rejected. Zero persistence.
	ClassGateway
	// ClassConsistency: the submitted order is not the session user's
	// cart. Zero mutation for that user.
	ClassConsistency
	// ClassPersistence: a store write failed after a successful charge.
	// There is no compensating refund; the charge id is logged for
	// operator reconciliation.
	ClassPersistence
	// ClassNotification: invoice or email dispatch failed after the order
	// was fully committed and numbered. The customer holds a valid,
	// billed, numbered order despite the failure response.
	ClassNotification
)

func (c Class) HTTPStatus() int {
	switch c {
	case ClassValidation, ClassGateway, ClassConsistency:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (c Class) Outcome() string {
	switch c {
	case ClassValidation:
		return "ValidationFailed"
	case ClassGateway:
		return "GatewayFailed"
	case ClassConsistency:
		return "ConsistencyFailed"
	case ClassPersistence:
		return "PersistenceFailed"
	case ClassNotification:
		return "NotificationFailed"
	default:
		return "Failed"
	}
}

// Failure is a classified checkout error. Msg is the external message for
// the response body; Err is the underlying cause.
type Failure struct {
	Class Class
	Msg   string
	Err   error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Msg + ": " + f.Err.Error()
	}
	return f.Msg
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(class Class, msg string, err error) *Failure {
	return &Failure{Class: class, Msg: msg, Err: err}
}
