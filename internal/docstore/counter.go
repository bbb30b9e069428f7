package docstore

import (
	"context"
	"fmt"
	"strconv"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tinker-fit/checkout/internal/awsx"
)

// Counter is the shared order-number allocator: one item, atomically
// incremented in place. The store serializes concurrent callers, which is
// the point — order numbers must never collide or go non-monotonic across
// the whole system. Gaps are tolerable, duplicates are not.
type Counter struct {
	client awsx.DynamoDBAPI
	table  string
	name   string
}

// NewCounter binds a counter to one item in the counters table.
func NewCounter(client awsx.DynamoDBAPI, table, name string) *Counter {
	return &Counter{
		client: client,
		table:  table,
		name:   name,
	}
}

// Increment advances the counter and returns its new value.
func (c *Counter) Increment(ctx context.Context) (int, error) {
	out, err := c.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &c.table,
		Key: map[string]types.AttributeValue{
			"_id": &types.AttributeValueMemberS{Value: c.name},
		},
		UpdateExpression: awsString("SET current_value = if_not_exists(current_value, :zero) + :inc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":inc":  &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}

	attr, ok := out.Attributes["current_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: unexpected attribute shape in response", c.name)
	}
	n, err := strconv.Atoi(attr.Value)
	if err != nil {
		return 0, fmt.Errorf("counter %s: parse value %q: %w", c.name, attr.Value, err)
	}
	return n, nil
}
