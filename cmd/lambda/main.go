package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"golang.org/x/sync/errgroup"

	"github.com/vegarsti/tablecsv"
	"github.com/vegarsti/tablecsv/csv"
	"github.com/vegarsti/tablecsv/dynamodb"
	"github.com/vegarsti/tablecsv/format"
	"github.com/vegarsti/tablecsv/html"
	"github.com/vegarsti/tablecsv/s3"
)

type handler struct {
	uploader  s3manageriface.UploaderAPI
	db        dynamodbiface.DynamoDBAPI
	bucket    string
	tableName string
	now       func() time.Time
}

func errorResponse(status int, msg string) *events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return &events.APIGatewayProxyResponse{
		Headers:    map[string]string{"Content-Type": "application/json"},
		StatusCode: status,
		Body:       string(body) + "\n",
	}
}

func csvResponse(filename string, file *tablecsv.File) *events.APIGatewayProxyResponse {
	return &events.APIGatewayProxyResponse{
		Headers: map[string]string{
			"Content-Type":        "text/csv",
			"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
			"ETag":                fmt.Sprintf(`"%s"`, file.Checksum),
		},
		StatusCode: 200,
		Body:       string(file.Bytes),
	}
}

// noContent answers an export that produced an empty document; there is
// nothing to download.
func noContent() *events.APIGatewayProxyResponse {
	return &events.APIGatewayProxyResponse{StatusCode: 204}
}

func (h *handler) HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	selector := req.QueryStringParameters["selector"]
	if selector == "" {
		return errorResponse(400, "query parameter selector is required"), nil
	}
	b := []byte(req.Body)
	if req.IsBase64Encoded {
		var err error
		b, err = base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return errorResponse(400, fmt.Sprintf("unable to convert base64 to bytes: %s", err)), nil
		}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return errorResponse(400, "request body must be an HTML page"), nil
	}
	filename := tablecsv.Filename(req.QueryStringParameters["filename"])
	var opts csv.Options
	if req.QueryStringParameters["escape_quotes"] == "true" {
		opts.Quoting = csv.QuoteEscaped
	}
	var reportDate string
	if s := req.QueryStringParameters["report_date"]; s != "" {
		var err error
		reportDate, err = format.Date(s)
		if err != nil {
			return errorResponse(400, err.Error()), nil
		}
	}

	key := tablecsv.ExportKey(tablecsv.NewHTML(b), selector)
	if opts.Quoting == csv.QuoteEscaped {
		key += "-escaped"
	}

	// Check if export is stored
	if h.db != nil {
		stored, err := dynamodb.GetExport(ctx, h.db, h.tableName, key)
		if err != nil {
			log.Printf("dynamodb.GetExport %s: %v", key, err)
			return errorResponse(500, fmt.Sprintf("dynamodb.GetExport: %s", err)), nil
		}
		if stored != nil {
			return csvResponse(filename, tablecsv.NewCSV(stored)), nil
		}
	}

	page, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return errorResponse(400, err.Error()), nil
	}
	res, ok, err := tablecsv.ExportNode(page, selector, opts)
	if errors.Is(err, html.ErrInvalidSelector) {
		return errorResponse(400, err.Error()), nil
	}
	if err != nil {
		return errorResponse(500, err.Error()), nil
	}
	if !ok {
		return errorResponse(404, fmt.Sprintf("no table matches selector %q", selector)), nil
	}
	if res.Empty() {
		return noContent(), nil
	}
	file := tablecsv.NewCSV([]byte(res.CSV))

	if err := h.publish(ctx, key, res.Table, file, reportDate); err != nil {
		log.Printf("publish %s: %v", key, err)
		return errorResponse(500, err.Error()), nil
	}
	return csvResponse(filename, file), nil
}

// publish stores a fresh export in the configured bucket and cache table.
func (h *handler) publish(ctx context.Context, key string, table html.Table, file *tablecsv.File, reportDate string) error {
	g, ctx := errgroup.WithContext(ctx)
	if h.uploader != nil {
		g.Go(func() error {
			return s3.UploadCSV(ctx, h.uploader, h.bucket, key, file)
		})
		g.Go(func() error {
			preview := html.FromTable(table, html.Preview{
				CSVURL:     s3.URL(h.bucket, key+".csv"),
				Exported:   h.now(),
				ReportDate: reportDate,
			})
			return s3.UploadHTML(ctx, h.uploader, h.bucket, key, []byte(preview))
		})
	}
	if h.db != nil {
		g.Go(func() error {
			return dynamodb.PutExport(ctx, h.db, h.tableName, key, file.Bytes)
		})
	}
	return g.Wait()
}

type config struct {
	awsRegion string
	bucket    string
	tableName string
}

func readEnvVars() (config, error) {
	cfg := config{
		awsRegion: os.Getenv("AWS_REGION"),
		bucket:    os.Getenv("EXPORT_BUCKET"),
		tableName: os.Getenv("EXPORT_TABLE"),
	}
	if cfg.awsRegion == "" {
		return cfg, fmt.Errorf("set environment variable AWS_REGION")
	}
	return cfg, nil
}

func main() {
	cfg, err := readEnvVars()
	if err != nil {
		log.Fatal(err)
	}
	mySession, err := session.NewSession()
	if err != nil {
		log.Fatalf("unable to create session: %v", err)
	}
	h := &handler{
		bucket:    cfg.bucket,
		tableName: cfg.tableName,
		now:       time.Now,
	}
	if cfg.bucket != "" {
		h.uploader = s3.NewUploader(mySession)
	}
	if cfg.tableName != "" {
		h.db = dynamodb.New(mySession)
		if err := dynamodb.CreateTable(context.Background(), h.db, cfg.tableName); err != nil {
			log.Fatal(err)
		}
	}
	lambda.Start(h.HandleRequest)
}
