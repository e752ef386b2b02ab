package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// scanAll reads every page of a scan into items of type T.
func scanAll[T any](ctx context.Context, client API, in *dynamodb.ScanInput, what string) ([]T, error) {
	var all []T
	paginator := dynamodb.NewScanPaginator(client, in)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan %s: %w", what, err)
		}

		var items []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal %s: %w", what, err)
		}
		all = append(all, items...)
	}
	return all, nil
}
