package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-todo-nosql/internal/domain"
)

// TodoRepo is the only component that reads or writes to-do items. Every
// operation except ScanAll is scoped by userId.
type TodoRepo struct {
	client    API
	tableName string
	indexName string
}

func NewTodoRepo(client API, tableName, indexName string) *TodoRepo {
	return &TodoRepo{client: client, tableName: tableName, indexName: indexName}
}

func (r *TodoRepo) Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       todoKey(userID, todoID),
	})
	if err != nil {
		return nil, fmt.Errorf("get todo %s: %w", todoID, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	var t domain.TodoItem
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("unmarshal todo: %w", err)
	}
	return &t, nil
}

// ListByUser queries the userId index and returns every page in one slice.
// There is no pagination: the full result set is held in memory, which bounds
// how many items a single user can usefully own.
func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attrUserID).Equal(expression.Value(userID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query todos for user: %w", err)
		}
		items = append(items, page.Items...)
	}
	return unmarshalTodos(items)
}

// ScanAll reads the whole table regardless of owner. It exists for
// administrative use only and must never be reachable from user-facing routes.
func (r *TodoRepo) ScanAll(ctx context.Context) ([]domain.TodoItem, error) {
	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan todos: %w", err)
		}
		items = append(items, page.Items...)
	}
	return unmarshalTodos(items)
}

// Put writes the item unconditionally, replacing any item with the same key,
// and echoes it back without re-reading.
func (r *TodoRepo) Put(ctx context.Context, t *domain.TodoItem) (*domain.TodoItem, error) {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return nil, fmt.Errorf("marshal todo: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("put todo %s: %w", t.TodoID, err)
	}
	return t, nil
}

// Update sets name, dueDate and done. A missing item yields domain.ErrNotFound.
func (r *TodoRepo) Update(ctx context.Context, userID, todoID string, u domain.TodoUpdate) error {
	return r.update(ctx, userID, todoID, map[string]any{
		attrName:    u.Name,
		attrDueDate: u.DueDate,
		attrDone:    u.Done,
	})
}

// SetAttachmentURL sets attachmentUrl only. A missing item yields domain.ErrNotFound.
func (r *TodoRepo) SetAttachmentURL(ctx context.Context, userID, todoID, url string) error {
	return r.update(ctx, userID, todoID, map[string]any{attrAttachmentURL: url})
}

// Delete removes the item. Deleting an item that does not exist succeeds.
func (r *TodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       todoKey(userID, todoID),
	})
	if err != nil {
		return fmt.Errorf("delete todo %s: %w", todoID, err)
	}
	return nil
}

func (r *TodoRepo) update(ctx context.Context, userID, todoID string, updates map[string]any) error {
	expr, err := buildExistingItemUpdate(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       todoKey(userID, todoID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update todo %s: %w", todoID, err)
	}
	return nil
}

func unmarshalTodos(items []map[string]types.AttributeValue) ([]domain.TodoItem, error) {
	todos := make([]domain.TodoItem, 0, len(items))
	if len(items) == 0 {
		return todos, nil
	}
	if err := attributevalue.UnmarshalListOfMaps(items, &todos); err != nil {
		return nil, fmt.Errorf("unmarshal todos: %w", err)
	}
	return todos, nil
}
