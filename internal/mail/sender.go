// Package mail dispatches invoice emails. Delivery goes through a queue;
// the worker binary drains it and hands messages to the provider.
package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tinker-fit/checkout/internal/awsx"
)

// Message is one outbound email.
type Message struct {
	To             string `json:"to"`
	From           string `json:"from"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// Sender is the mail collaborator contract.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// QueueSender publishes delivery jobs to SQS. A nil error means the job is
// durably queued, not that the provider has delivered it.
type QueueSender struct {
	pub *awsx.Publisher
}

func NewQueueSender(pub *awsx.Publisher) *QueueSender {
	return &QueueSender{pub: pub}
}

func (s *QueueSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail message has no recipient")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}
	attrs := map[string]string{
		"recipient": msg.To,
	}
	if err := s.pub.Publish(ctx, string(body), attrs); err != nil {
		return fmt.Errorf("queue mail message: %w", err)
	}
	return nil
}
