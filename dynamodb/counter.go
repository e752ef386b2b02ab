package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Counter hands out sequential IDs from atomic counters kept in one table,
// one item per sequence name.
type Counter struct {
	client API
	table  string
}

func NewCounter(client API, table string) *Counter {
	return &Counter{
		client: client,
		table:  table,
	}
}

// Next increments the named sequence and returns its new value.
func (c *Counter) Next(ctx context.Context, name string) (int64, error) {
	if err := validateTable(c.table); err != nil {
		return 0, err
	}

	out, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &c.table,
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": numberValue(1),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: next %s id: %w", name, err)
	}

	v, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("dynamodb: next %s id: missing counter value", name)
	}
	n, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("dynamodb: parse %s id: %w", name, err)
	}
	return n, nil
}
