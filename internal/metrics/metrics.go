// Package metrics emits checkout outcome counters to CloudWatch. Metric
// failures are logged and swallowed; observability must never fail a
// checkout.
package metrics

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/tinker-fit/checkout/internal/awsx"
)

// Emitter publishes one datum per terminal checkout state.
type Emitter struct {
	client    awsx.CloudWatchAPI
	namespace string
}

func NewEmitter(client awsx.CloudWatchAPI, namespace string) *Emitter {
	return &Emitter{
		client:    client,
		namespace: namespace,
	}
}

func (e *Emitter) RecordCheckout(ctx context.Context, outcome string) {
	one := 1.0
	name := "Checkout"
	dimName := "Outcome"
	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &e.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &one,
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: &dimName, Value: &outcome},
				},
			},
		},
	})
	if err != nil {
		log.Printf("metrics: put checkout datum: %v", err)
	}
}

// Noop discards all metrics (tests, local runs without CloudWatch).
type Noop struct{}

func (Noop) RecordCheckout(context.Context, string) {}
