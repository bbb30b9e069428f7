package docstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/tinker-fit/checkout/internal/awsx"
	"github.com/tinker-fit/checkout/internal/domain"
)

// Collection is a typed view over one DynamoDB table of documents keyed by
// "_id". DynamoDB has no native revision stamp, so the collection mints
// CouchDB-style "gen-suffix" revisions itself: the generation is parsed
// from the document's current rev and bumped on every write. Concurrent
// writers are not reconciled; last write wins.
type Collection[T any] struct {
	client awsx.DynamoDBAPI
	table  string
}

// NewCollection binds a collection to a table.
func NewCollection[T any](client awsx.DynamoDBAPI, table string) *Collection[T] {
	return &Collection[T]{
		client: client,
		table:  table,
	}
}

// Get fetches a document by id. Returns domain.ErrNotFound when absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, &domain.BadIDError{ID: id}
	}
	out, err := c.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &c.table,
		Key: map[string]types.AttributeValue{
			"_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		// A missing table reads the same as a missing document.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return nil, fmt.Errorf("%s/%s: %w", c.table, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", c.table, id, domain.ErrNotFound)
	}
	var doc T
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

// Exists reports whether a document with the given id is present.
func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	out, err := c.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &c.table,
		Key: map[string]types.AttributeValue{
			"_id": &types.AttributeValueMemberS{Value: id},
		},
		ProjectionExpression: awsString("#id"),
		ExpressionAttributeNames: map[string]string{
			"#id": "_id",
		},
	})
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	return len(out.Item) > 0, nil
}

// Insert writes a document at the given id, or at a freshly generated one
// when id is empty. The document's revision stamp is advanced and the new
// identity is returned; the stored item always carries _id and _rev.
func (c *Collection[T]) Insert(ctx context.Context, doc *T, id string) (domain.Meta, error) {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return domain.Meta{}, fmt.Errorf("marshal document: %w", err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	rev := nextRev(stringAttr(item, "_rev"))
	item["_id"] = &types.AttributeValueMemberS{Value: id}
	item["_rev"] = &types.AttributeValueMemberS{Value: rev}

	_, err = c.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &c.table,
		Item:      item,
	})
	if err != nil {
		return domain.Meta{}, fmt.Errorf("put item: %w", err)
	}
	return domain.Meta{ID: id, Rev: rev}, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// nextRev bumps the generation of a "gen-suffix" revision stamp. An empty
// or unparseable previous rev starts a new document at generation 1.
func nextRev(prev string) string {
	gen := 0
	if i := strings.IndexByte(prev, '-'); i > 0 {
		if n, err := strconv.Atoi(prev[:i]); err == nil {
			gen = n
		}
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return fmt.Sprintf("%d-%s", gen+1, suffix)
}

func awsString(s string) *string { return &s }
