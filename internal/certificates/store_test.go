package certificates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDynamo is a simple in-memory table keyed by the "id" attribute.
// It supports Query on the partition key and PutItem with attribute_not_exists(id).
type mockDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	queryErr error
	putErr   error
	queries  int
	puts     int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	v, ok := params.ExpressionAttributeValues[":id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("missing :id")
	}
	item, ok := m.items[v.Value]
	if !ok {
		return &dyn.QueryOutput{Items: []map[string]types.AttributeValue{}}, nil
	}
	return &dyn.QueryOutput{Items: []map[string]types.AttributeValue{item}, Count: 1}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return nil, m.putErr
	}
	v, ok := params.Item["id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("no primary key in put item")
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(id)" {
		if _, exists := m.items[v.Value]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[v.Value] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFind_NotFound(t *testing.T) {
	store := NewStore(newMockDynamo(), "users_certificate")

	rec, err := store.Find(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCreateIfAbsent_ThenFind(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users_certificate")
	issuedAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	store.nowFunc = fixedClock(issuedAt)

	created, err := store.CreateIfAbsent(context.Background(), Record{ID: "u1", Name: "Ana", Grade: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	rec, err := store.Find(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, Record{ID: "u1", Name: "Ana", Grade: "A", CreatedAt: "2024-03-01T10:30:00.000Z"}, *rec)
}

func TestCreateIfAbsent_ExistingIDIsNotOverwritten(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users_certificate")
	store.nowFunc = fixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	created, err := store.CreateIfAbsent(context.Background(), Record{ID: "u1", Name: "Ana", Grade: "A"})
	require.NoError(t, err)
	require.True(t, created)

	store.nowFunc = fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	created, err = store.CreateIfAbsent(context.Background(), Record{ID: "u1", Name: "Bob", Grade: "C"})
	require.NoError(t, err)
	assert.False(t, created)

	var stored Record
	require.NoError(t, attributevalue.UnmarshalMap(mock.items["u1"], &stored))
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, "A", stored.Grade)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", stored.CreatedAt)
}

func TestCreateIfAbsent_PutError(t *testing.T) {
	mock := newMockDynamo()
	mock.putErr = errors.New("provisioned throughput exceeded")
	store := NewStore(mock, "users_certificate")

	created, err := store.CreateIfAbsent(context.Background(), Record{ID: "u1"})
	assert.False(t, created)
	assert.ErrorContains(t, err, "provisioned throughput exceeded")
}

func TestFind_QueryError(t *testing.T) {
	mock := newMockDynamo()
	mock.queryErr = errors.New("connection refused")
	store := NewStore(mock, "users_certificate")

	_, err := store.Find(context.Background(), "u1")
	assert.ErrorIs(t, err, mock.queryErr)
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2024, 3, 1, 7, 0, 0, 5_000_000, loc)

	assert.Equal(t, "2024-03-01T10:00:00.005Z", FormatTimestamp(ts))
}
