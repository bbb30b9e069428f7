package main

import (
	"context"

	"github.com/tinker-fit/checkout/internal/mail"
)

// Deliverer hands a decoded delivery job to the mail provider. The
// provider integration is deployment-specific; the core only guarantees
// the job reaches it.
type Deliverer interface {
	Deliver(ctx context.Context, msg mail.Message) error
}
