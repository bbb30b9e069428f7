package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/tinker-fit/checkout/internal/mail"
)

// Processor drains the mail queue and hands delivery jobs to the provider.
type Processor struct {
	deliverer Deliverer
}

func NewProcessor(deliverer Deliverer) *Processor {
	return &Processor{deliverer: deliverer}
}

// Handle receives an SQS batch event and processes each message.
// Returning an error lets the runtime retry; repeated failures land the
// message in the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg mail.Message
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.To == "" {
		return fmt.Errorf("mail message %s has no recipient", rec.MessageId)
	}

	log.Printf("[worker] delivering invoice email to=%s subject=%q", msg.To, msg.Subject)

	if err := p.deliverer.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("deliver to %s: %w", msg.To, err)
	}
	return nil
}

// logDeliverer is the default provider hook: it records the delivery and
// succeeds. Real deployments swap in the provider client here.
type logDeliverer struct{}

func (logDeliverer) Deliver(ctx context.Context, msg mail.Message) error {
	log.Printf("[worker] delivered to=%s attachment=%s", msg.To, msg.AttachmentPath)
	return nil
}
