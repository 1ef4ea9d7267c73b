package dynamo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// todoKey builds the (userId, todoId) primary key of an item.
func todoKey(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrUserID: &types.AttributeValueMemberS{Value: userID},
		attrTodoID: &types.AttributeValueMemberS{Value: todoID},
	}
}

// buildExistingItemUpdate converts field->value pairs into a SET expression
// guarded by attribute_exists on both key attributes, so updating a missing
// item fails instead of creating a partial one. Fields are applied in sorted
// order to keep the generated expression deterministic.
func buildExistingItemUpdate(updates map[string]any) (expression.Expression, error) {
	if len(updates) == 0 {
		return expression.Expression{}, errors.New("no fields to update")
	}
	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var upd expression.UpdateBuilder
	for i, f := range fields {
		if i == 0 {
			upd = expression.Set(expression.Name(f), expression.Value(updates[f]))
			continue
		}
		upd = upd.Set(expression.Name(f), expression.Value(updates[f]))
	}
	cond := expression.AttributeExists(expression.Name(attrUserID)).
		And(expression.AttributeExists(expression.Name(attrTodoID)))

	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("build update expression: %w", err)
	}
	return expr, nil
}

// isConditionFailed reports whether err is DynamoDB rejecting a write because
// its condition expression evaluated to false.
func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
