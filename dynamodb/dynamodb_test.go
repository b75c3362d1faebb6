package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/go-playground/assert/v2"
)

type fakeDB struct {
	dynamodbiface.DynamoDBAPI
	items     map[string]map[string]*dynamodb.AttributeValue
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDB) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[aws.StringValue(in.TableName)+"/"+aws.StringValue(in.Item["Checksum"].S)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDB) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error) {
	item, ok := f.items[aws.StringValue(in.TableName)+"/"+aws.StringValue(in.Key["Checksum"].S)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: map[string]*dynamodb.AttributeValue{"CSV": item["CSV"]}}, nil
}

func (f *fakeDB) CreateTableWithContext(ctx aws.Context, in *dynamodb.CreateTableInput, opts ...request.Option) (*dynamodb.CreateTableOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func TestPutGetExport(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()

	got, err := GetExport(ctx, db, "Exports", "abc")
	assert.Equal(t, err, nil)
	if got != nil {
		t.Fatalf("GetExport before put = %q, want nil", got)
	}

	assert.Equal(t, PutExport(ctx, db, "Exports", "abc", []byte("Item,Qty")), nil)
	got, err = GetExport(ctx, db, "Exports", "abc")
	assert.Equal(t, err, nil)
	assert.Equal(t, string(got), "Item,Qty")
}

func TestGetExportEmptyDocument(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	assert.Equal(t, PutExport(ctx, db, "Exports", "empty", nil), nil)
	got, err := GetExport(ctx, db, "Exports", "empty")
	assert.Equal(t, err, nil)
	if got == nil {
		t.Fatal("cached empty document reported as missing")
	}
	assert.Equal(t, len(got), 0)
}

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	assert.Equal(t, CreateTable(ctx, db, "Exports"), nil)

	db.createErr = awserr.New(dynamodb.ErrCodeResourceInUseException, "Table already exists: Exports", nil)
	assert.Equal(t, CreateTable(ctx, db, "Exports"), nil)

	boom := errors.New("boom")
	db.createErr = boom
	if err := CreateTable(ctx, db, "Exports"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}
