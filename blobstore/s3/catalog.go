package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentPublish is returned when two writers race to publish the
// same dataset version.
var ErrConcurrentPublish = errors.New("concurrent publish detected")

// DDBClient is the subset of the DynamoDB API used by Catalog.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Catalog tracks the latest published snapshot of each dataset using a
// DynamoDB table. S3 has no compare-and-swap, so the "which snapshot is
// current" pointer lives in DynamoDB: publishing writes the snapshot blob
// to S3 first, then commits the key under a new version with a conditional
// put. Readers resolve the newest version and open the blob it names.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: version (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name diorama-datasets \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	client    DDBClient
	tableName string
}

// NewCatalog creates a catalog backed by the given DynamoDB table.
func NewCatalog(client DDBClient, tableName string) *Catalog {
	return &Catalog{
		client:    client,
		tableName: tableName,
	}
}

// Latest returns the newest published version of the dataset and the
// snapshot key it points at. Version 0 means nothing has been published.
func (c *Catalog) Latest(ctx context.Context, dataset string) (uint64, string, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("dataset = :ds"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":ds": &ddbtypes.AttributeValueMemberS{Value: dataset},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query catalog: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in catalog")
	}
	keyAttr, ok := item["snapshot_key"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid snapshot_key attribute in catalog")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse version: %w", err)
	}

	return version, keyAttr.Value, nil
}

// Publish records snapshotKey as the next version of the dataset. The
// snapshot blob must already exist in the store. The conditional put
// fails with ErrConcurrentPublish if another writer claimed the same
// version first.
func (c *Catalog) Publish(ctx context.Context, dataset, snapshotKey string) (uint64, error) {
	current, _, err := c.Latest(ctx, dataset)
	if err != nil {
		return 0, err
	}

	next := current + 1

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]ddbtypes.AttributeValue{
			"dataset":      &ddbtypes.AttributeValueMemberS{Value: dataset},
			"version":      &ddbtypes.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"snapshot_key": &ddbtypes.AttributeValueMemberS{Value: snapshotKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentPublish
		}
		return 0, fmt.Errorf("publish version: %w", err)
	}

	return next, nil
}
