package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	p := NewProcessor(logDeliverer{})

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"to":"local@tinker.fit","from":"do-not-reply@tinker.fit","subject":"Per4max Purchase Invoice","body":"local test"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: testBody},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
