package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"saluz-foodbot/internal/domain"
)

const pkPrefix = "SENDER#"

// dynamodbAPI is the minimal DynamoDB interface required by Store.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store keeps one conversation document per sender in a DynamoDB table.
type Store struct {
	api       dynamodbAPI
	tableName string
}

// stateRecord is the persisted document shape.
type stateRecord struct {
	Items   []domain.OrderItem `dynamodbav:"items"`
	Total   float64            `dynamodbav:"total"`
	History []domain.Turn      `dynamodbav:"chatHistory"`
}

// New creates a Store backed by the given DynamoDB API.
func New(api dynamodbAPI, tableName string) (*Store, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Store{api: api, tableName: tableName}, nil
}

func senderPK(senderID string) string {
	return pkPrefix + senderID
}

// Load fetches the sender's conversation document. A missing document is
// not an error; it yields the empty state so the first turn starts clean.
func (s *Store) Load(ctx context.Context, senderID string) (domain.State, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: senderPK(senderID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("repository: Load get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.State{}, nil
	}

	var rec stateRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return domain.State{}, fmt.Errorf("repository: Load unmarshal: %w", err)
	}
	return domain.State{Items: rec.Items, Total: rec.Total, History: rec.History}, nil
}

// Save merge-upserts the turn's projection: only the order items, the
// running total and the chat history are written, so attributes owned by
// other writers survive untouched.
func (s *Store) Save(ctx context.Context, senderID string, state domain.State) error {
	rec := stateRecord{Items: state.Items, Total: state.Total, History: state.History}
	if rec.Items == nil {
		rec.Items = []domain.OrderItem{}
	}
	if rec.History == nil {
		rec.History = []domain.Turn{}
	}

	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("repository: Save marshal: %w", err)
	}

	_, err = s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: senderPK(senderID)},
		},
		UpdateExpression: aws.String("SET #items = :items, #total = :total, #history = :history, #updatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#items":     "items",
			"#total":     "total",
			"#history":   "chatHistory",
			"#updatedAt": "updatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":items":     av["items"],
			":total":     av["total"],
			":history":   av["chatHistory"],
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: Save update item: %w", err)
	}
	return nil
}
