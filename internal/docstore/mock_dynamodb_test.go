package docstore

import (
	"context"
	"errors"
	"strconv"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory stand-in for the DynamoDB client: items
// keyed by "_id" per table, atomic counter update support, call counters
// for instrumentation assertions.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	getCalls    int
	putCalls    int
	updateCalls int

	failPut    error
	failGet    error
	failUpdate error
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := m.tables[name]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		m.tables[name] = t
	}
	return t
}

func keyID(key map[string]types.AttributeValue) (string, error) {
	attr, ok := key["_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing _id key")
	}
	return attr.Value, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, in *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.failGet != nil {
		return nil, m.failGet
	}
	k, err := keyID(in.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table(*in.TableName)[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, in *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.failPut != nil {
		return nil, m.failPut
	}
	if in.Item == nil {
		return nil, errors.New("nil item")
	}
	k, err := keyID(in.Item)
	if err != nil {
		return nil, err
	}
	m.table(*in.TableName)[k] = in.Item
	return &dyn.PutItemOutput{}, nil
}

// UpdateItem implements just enough for the counter expression:
// SET current_value = if_not_exists(current_value, :zero) + :inc
func (m *mockDynamo) UpdateItem(ctx context.Context, in *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.failUpdate != nil {
		return nil, m.failUpdate
	}
	k, err := keyID(in.Key)
	if err != nil {
		return nil, err
	}
	t := m.table(*in.TableName)
	item, ok := t[k]
	if !ok {
		item = map[string]types.AttributeValue{
			"_id": &types.AttributeValueMemberS{Value: k},
		}
		t[k] = item
	}

	cur := 0
	if v, ok := item["current_value"].(*types.AttributeValueMemberN); ok {
		cur, _ = strconv.Atoi(v.Value)
	}
	inc := 1
	if v, ok := in.ExpressionAttributeValues[":inc"].(*types.AttributeValueMemberN); ok {
		inc, _ = strconv.Atoi(v.Value)
	}
	next := cur + inc
	item["current_value"] = &types.AttributeValueMemberN{Value: strconv.Itoa(next)}

	return &dyn.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"current_value": &types.AttributeValueMemberN{Value: strconv.Itoa(next)},
		},
	}, nil
}
