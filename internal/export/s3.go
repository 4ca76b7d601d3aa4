package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var (
	// ErrNoBucket is returned when uploads are not configured.
	ErrNoBucket = errors.New("no export bucket configured")

	// ErrAccessDenied is returned when the bucket refuses the upload.
	ErrAccessDenied = errors.New("access denied")
)

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config locates the export bucket.
type S3Config struct {
	Bucket  string
	Region  string
	Prefix  string
	Profile string
}

// Uploader stores exports in an S3 bucket.
type Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewUploader builds an uploader from the shared AWS configuration.
func NewUploader(ctx context.Context, cfg S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, wrapAWSError(err, "load AWS config")
	}

	return NewUploaderWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewUploaderWithClient returns an uploader over an existing client.
func NewUploaderWithClient(c PutObjectAPI, cfg S3Config) *Uploader {
	return &Uploader{
		client: c,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
}

// Key returns the object key of an export.
func (u *Uploader) Key(resource string, f Format, at time.Time) string {
	name := FileName(resource, f, at)
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}

// Upload encodes the table and stores it. It returns the s3 url.
func (u *Uploader) Upload(ctx context.Context, resource string, t Table, f Format, at time.Time) (string, error) {
	raw, err := Encode(t, f)
	if err != nil {
		return "", err
	}
	key := u.Key(resource, f, at)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(f.ContentType()),
	})
	if err != nil {
		return "", wrapAWSError(err, "upload "+key)
	}

	return "s3://" + u.bucket + "/" + key, nil
}

func wrapAWSError(err error, operation string) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s failed: %w", operation, err)
	}
	switch apiErr.ErrorCode() {
	case "AccessDenied", "AccessDeniedException", "AllAccessDisabled":
		return fmt.Errorf("%w: %s", ErrAccessDenied, operation)
	case "NoSuchBucket":
		return fmt.Errorf("%s failed: bucket does not exist: %w", operation, err)
	default:
		return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
	}
}
