package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableWaitTimeout = 2 * time.Minute

// TableAPI is the subset of the DynamoDB client needed to bootstrap tables.
type TableAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableSchema names a table and its hash key.
type TableSchema struct {
	Name    string
	Key     string
	KeyType types.ScalarAttributeType
}

// EntityTable is the schema of the users and films tables.
func EntityTable(name string) TableSchema {
	return TableSchema{Name: name, Key: "id", KeyType: types.ScalarAttributeTypeN}
}

// CounterTable is the schema of the table backing Counter.
func CounterTable(name string) TableSchema {
	return TableSchema{Name: name, Key: "name", KeyType: types.ScalarAttributeTypeS}
}

// EnsureTables creates every missing table with on-demand billing and waits
// until it is active. Existing tables are left untouched.
func EnsureTables(ctx context.Context, client TableAPI, tables ...TableSchema) error {
	for _, t := range tables {
		if err := validateTable(t.Name); err != nil {
			return err
		}

		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(t.Name)})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return fmt.Errorf("dynamodb: describe table %s: %w", t.Name, err)
		}

		_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(t.Name),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(t.Key), AttributeType: t.KeyType},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(t.Key), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		})
		var inUse *types.ResourceInUseException
		if err != nil && !errors.As(err, &inUse) {
			return fmt.Errorf("dynamodb: create table %s: %w", t.Name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(t.Name)}, tableWaitTimeout); err != nil {
			return fmt.Errorf("dynamodb: wait for table %s: %w", t.Name, err)
		}
	}
	return nil
}
