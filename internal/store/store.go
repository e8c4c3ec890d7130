package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kartel-backend/internal/database"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store is the record store adapter: JSON blobs addressed by
// (collection, key). Get reports absence as (nil, nil), never as an error.
// Individual records are the durable source of truth; the per-collection
// list blob (see List) is a cache on top of them.
type Store interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Set(ctx context.Context, collection, key string, body []byte) error
	Delete(ctx context.Context, collection, key string) error
	ListKeys(ctx context.Context, collection string) ([]string, error)
}

// GetJSON loads and decodes a record. The bool reports presence.
func GetJSON(ctx context.Context, s Store, collection, key string, out interface{}) (bool, error) {
	body, err := s.Get(ctx, collection, key)
	if err != nil {
		return false, err
	}
	if body == nil {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return true, nil
}

// SetJSON encodes and stores a record.
func SetJSON(ctx context.Context, s Store, collection, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, key, err)
	}
	return s.Set(ctx, collection, key, body)
}

// recordItem is the single-table DynamoDB shape: partition key is the
// collection name, sort key the record key, body the raw JSON blob.
type recordItem struct {
	Collection string `dynamodbav:"collection"`
	RecordKey  string `dynamodbav:"recordKey"`
	Body       string `dynamodbav:"body"`
}

type DynamoStore struct {
	db    *database.Database
	table string
}

func NewDynamoStore(db *database.Database, table string) *DynamoStore {
	return &DynamoStore{db: db, table: table}
}

func (s *DynamoStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var item recordItem
	err := s.db.Client.GetItem(ctx, s.table, recordKeyAttrs(collection, key), &item)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(item.Body), nil
}

func (s *DynamoStore) Set(ctx context.Context, collection, key string, body []byte) error {
	return s.db.Client.PutItem(ctx, s.table, recordItem{
		Collection: collection,
		RecordKey:  key,
		Body:       string(body),
	})
}

func (s *DynamoStore) Delete(ctx context.Context, collection, key string) error {
	return s.db.Client.DeleteItem(ctx, s.table, recordKeyAttrs(collection, key))
}

func (s *DynamoStore) ListKeys(ctx context.Context, collection string) ([]string, error) {
	projection := "recordKey"
	items, err := s.db.Client.QueryAll(
		ctx,
		s.table,
		"#c = :collection",
		map[string]types.AttributeValue{
			":collection": &types.AttributeValueMemberS{Value: collection},
		},
		map[string]string{"#c": "collection"},
		&projection,
	)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		attr, ok := item["recordKey"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		keys = append(keys, attr.Value)
	}
	return keys, nil
}

func recordKeyAttrs(collection, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"collection": &types.AttributeValueMemberS{Value: collection},
		"recordKey":  &types.AttributeValueMemberS{Value: key},
	}
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
