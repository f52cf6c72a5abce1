package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

const (
	s3Scheme           = "s3://"
	sqlContentType     = "application/sql; charset=utf-8"
	textCodeUploadFail = "OUTPUT_UPLOAD_FAILED"
)

var ErrInvalidS3Location = errors.New("output: s3 location must be s3://bucket/key")

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ParseS3URI splits s3://bucket/key. ok is false for non-s3 locations.
func ParseS3URI(location string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(location, s3Scheme) {
		return "", "", false, nil
	}
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || strings.TrimSpace(key) == "" {
		return "", "", true, fmt.Errorf("%w: %q", ErrInvalidS3Location, location)
	}
	return bucket, key, true, nil
}

// S3Sink uploads the SQL text as a single object.
type S3Sink struct {
	client ObjectPutter
	bucket string
	key    string
}

var _ interfaces.Sink = (*S3Sink)(nil)

// NewS3Sink targets bucket/key through client.
func NewS3Sink(client ObjectPutter, bucket, key string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, key: key}
}

func (s *S3Sink) Write(ctx context.Context, sql []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(sql),
		ContentType: aws.String(sqlContentType),
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "upload sql output").
			WithTextCode(textCodeUploadFail).
			WithMetadata(map[string]any{"location": s.Location()})
	}
	return nil
}

func (s *S3Sink) Location() string {
	return s3Scheme + s.bucket + "/" + s.key
}

// NewS3Client builds an S3 client from the output configuration. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies. A custom endpoint switches to path-style
// addressing for S3-compatible stores.
func NewS3Client(ctx context.Context, cfg runtimeconfig.OutputConfig) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(cfg.S3Region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("output: load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.S3Endpoint)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
