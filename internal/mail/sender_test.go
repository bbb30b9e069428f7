package mail

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/tinker-fit/checkout/internal/awsx"
)

type mockSQS struct {
	sendCalls int
	lastInput *sqs.SendMessageInput
	failWith  error
}

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	m.sendCalls++
	m.lastInput = in
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestQueueSender_PublishesJSONWithRecipientAttr(t *testing.T) {
	mock := &mockSQS{}
	sender := NewQueueSender(awsx.NewPublisher(mock, "https://sqs.local/mail"))

	msg := Message{
		To:             "ada@example.com",
		From:           "do-not-reply@tinker.fit",
		Subject:        "Purchase Confirmation",
		Body:           "Thank you for your order.",
		AttachmentPath: "/tmp/invoice-12.txt",
	}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if mock.sendCalls != 1 {
		t.Fatalf("sendCalls = %d", mock.sendCalls)
	}
	if got := *mock.lastInput.QueueUrl; got != "https://sqs.local/mail" {
		t.Fatalf("queue url = %q", got)
	}

	var decoded Message
	if err := json.Unmarshal([]byte(*mock.lastInput.MessageBody), &decoded); err != nil {
		t.Fatalf("body is not the message JSON: %v", err)
	}
	if decoded != msg {
		t.Fatalf("round-tripped message = %+v", decoded)
	}

	attr, ok := mock.lastInput.MessageAttributes["recipient"]
	if !ok || *attr.StringValue != "ada@example.com" {
		t.Fatalf("recipient attribute = %+v", attr)
	}
}

func TestQueueSender_RejectsMissingRecipient(t *testing.T) {
	mock := &mockSQS{}
	sender := NewQueueSender(awsx.NewPublisher(mock, "https://sqs.local/mail"))

	if err := sender.Send(context.Background(), Message{Subject: "hi"}); err == nil {
		t.Fatal("expected error for empty recipient")
	}
	if mock.sendCalls != 0 {
		t.Fatalf("queue reached despite invalid message, calls = %d", mock.sendCalls)
	}
}

func TestQueueSender_QueueFailureSurfaces(t *testing.T) {
	boom := errors.New("queue unavailable")
	mock := &mockSQS{failWith: boom}
	sender := NewQueueSender(awsx.NewPublisher(mock, "https://sqs.local/mail"))

	err := sender.Send(context.Background(), Message{To: "ada@example.com"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected queue error, got %v", err)
	}
}
