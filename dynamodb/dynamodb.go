package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

func New(sess *session.Session) dynamodbiface.DynamoDBAPI {
	return dynamodb.New(sess)
}

// CreateTable creates the export cache table keyed by export checksum.
// An existing table is not an error.
func CreateTable(ctx context.Context, svc dynamodbiface.DynamoDBAPI, tableName string) error {
	billingMode := "PAY_PER_REQUEST"
	input := &dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("Checksum"),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("Checksum"),
				KeyType:       aws.String("HASH"),
			},
		},
		TableName:   aws.String(tableName),
		BillingMode: &billingMode,
	}
	if _, err := svc.CreateTableWithContext(ctx, input); err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
			return nil
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func PutExport(ctx context.Context, svc dynamodbiface.DynamoDBAPI, tableName string, checksum string, csv []byte) error {
	if csv == nil {
		csv = []byte{}
	}
	putInput := &dynamodb.PutItemInput{
		Item: map[string]*dynamodb.AttributeValue{
			"Checksum":  {S: &checksum},
			"CSV":       {B: csv},
			"Timestamp": {S: aws.String(time.Now().Format(time.RFC3339))},
		},
		TableName: aws.String(tableName),
	}
	if _, err := svc.PutItemWithContext(ctx, putInput); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// GetExport returns the cached CSV for checksum, or nil when there is none.
func GetExport(ctx context.Context, svc dynamodbiface.DynamoDBAPI, tableName string, checksum string) ([]byte, error) {
	projection := "#csv"
	getInput := &dynamodb.GetItemInput{
		Key: map[string]*dynamodb.AttributeValue{
			"Checksum": {S: &checksum},
		},
		ProjectionExpression:     &projection,
		ExpressionAttributeNames: map[string]*string{"#csv": aws.String("CSV")},
		TableName:                aws.String(tableName),
	}
	output, err := svc.GetItemWithContext(ctx, getInput)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	item, ok := output.Item["CSV"]
	if !ok {
		return nil, nil
	}
	if item.B == nil {
		return []byte{}, nil
	}
	return item.B, nil
}
