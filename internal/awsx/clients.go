package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Clients bundles all service clients for convenience.
type Clients struct {
	DynamoDB   DynamoDBAPI
	SQS        SQSAPI
	CloudWatch CloudWatchAPI
}

// NewClients loads AWS config and returns concrete service clients that implement our interfaces.
func NewClients(ctx context.Context) (*Clients, error) {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Clients{
		DynamoDB:   dynamodb.NewFromConfig(cfg),
		SQS:        sqs.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
	}, nil
}
