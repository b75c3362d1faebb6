package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/vegarsti/tablecsv"
)

func NewUploader(sess *session.Session) s3manageriface.UploaderAPI {
	return s3manager.NewUploader(sess)
}

// UploadCSV stores file as <identifier>.csv, served as a download. The
// file checksum is kept in the object's sha256 metadata.
func UploadCSV(ctx context.Context, uploader s3manageriface.UploaderAPI, bucket string, identifier string, file *tablecsv.File) error {
	contentType := "text/csv"
	contentDisposition := fmt.Sprintf(`attachment; filename="%s.csv"`, identifier)
	uploadParams := &s3manager.UploadInput{
		Bucket:             aws.String(bucket),
		Key:                aws.String(identifier + ".csv"),
		Body:               bytes.NewReader(file.Bytes),
		ContentDisposition: &contentDisposition,
		ContentType:        &contentType,
		Metadata:           map[string]*string{"sha256": aws.String(file.Checksum)},
	}
	if _, err := uploader.UploadWithContext(ctx, uploadParams); err != nil {
		return fmt.Errorf("uploadCSV: %w", err)
	}
	return nil
}

// UploadHTML stores a preview page under identifier, served inline.
func UploadHTML(ctx context.Context, uploader s3manageriface.UploaderAPI, bucket string, identifier string, data []byte) error {
	contentType := "text/html"
	contentDisposition := "inline"
	uploadParams := &s3manager.UploadInput{
		Bucket:             aws.String(bucket),
		Key:                aws.String(identifier),
		Body:               bytes.NewReader(data),
		ContentDisposition: &contentDisposition,
		ContentType:        &contentType,
	}
	if _, err := uploader.UploadWithContext(ctx, uploadParams); err != nil {
		return fmt.Errorf("uploadHTML: %w", err)
	}
	return nil
}

// URL is the public address of an object in bucket.
func URL(bucket string, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}
