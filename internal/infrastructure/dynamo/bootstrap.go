package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableActiveTimeout = 2 * time.Minute

// Bootstrap creates the todos table and its userId index if they don't exist,
// then waits for the table to become active. Intended for local environments;
// production tables are provisioned with the deployment.
func Bootstrap(ctx context.Context, client TableAPI, tableName, indexName string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrUserID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrTodoID), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrUserID), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrTodoID), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexName, attrUserID, ""),
		},
	})
	if err != nil {
		// The table already exists.
		var riue *types.ResourceInUseException
		if errors.As(err, &riue) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", tableName, err)
	}
	slog.Info("created table", "table", tableName, "index", indexName)

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, tableActiveTimeout); err != nil {
		return fmt.Errorf("wait for table %s: %w", tableName, err)
	}
	return nil
}

// VerifyTodosTable checks that the table exists with userId/todoId as its
// partition/sort key and that indexName is a GSI partitioned by userId.
func VerifyTodosTable(ctx context.Context, client TableAPI, tableName, indexName string) error {
	out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		var rnfe *types.ResourceNotFoundException
		if errors.As(err, &rnfe) {
			return fmt.Errorf("table %s does not exist", tableName)
		}
		return fmt.Errorf("describe table %s: %w", tableName, err)
	}
	if out.Table == nil {
		return fmt.Errorf("table %s has no description", tableName)
	}

	hash, rng := keyAttributes(out.Table.KeySchema)
	if hash != attrUserID || rng != attrTodoID {
		return fmt.Errorf("table %s has key (%s, %s), expected (%s, %s)", tableName, hash, rng, attrUserID, attrTodoID)
	}

	for _, idx := range out.Table.GlobalSecondaryIndexes {
		if aws.ToString(idx.IndexName) != indexName {
			continue
		}
		if h, _ := keyAttributes(idx.KeySchema); h != attrUserID {
			return fmt.Errorf("index %s on table %s is partitioned by %s, expected %s", indexName, tableName, h, attrUserID)
		}
		return nil
	}
	return fmt.Errorf("table %s has no index %s", tableName, indexName)
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashKey, sortKey string) types.GlobalSecondaryIndex {
	ks := []types.KeySchemaElement{
		{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func keyAttributes(ks []types.KeySchemaElement) (hash, rng string) {
	for _, k := range ks {
		switch k.KeyType {
		case types.KeyTypeHash:
			hash = aws.ToString(k.AttributeName)
		case types.KeyTypeRange:
			rng = aws.ToString(k.AttributeName)
		}
	}
	return hash, rng
}
