package syncx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures an S3Backend. Endpoint is optional and supports
// MinIO-style self-hosted stores; when AccessKey is empty the SDK's default
// credential chain applies.
type S3Config struct {
	Region    string
	Bucket    string
	Key       string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// s3Client is the subset of the S3 API the backend uses; a test seam.
type s3Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend stores the encrypted sync content as a single object in a
// bucket. Bucket versioning, when enabled, preserves overwritten pushes.
type S3Backend struct {
	client s3Client
	bucket string
	key    string
}

// NewS3Backend builds an S3Backend from config.
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Backend{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// Read returns the object content, or "" when the object does not exist yet.
func (b *S3Backend) Read(ctx context.Context) (string, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return string(data), nil
}

// Write replaces the object content.
func (b *S3Backend) Write(ctx context.Context, content string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Body:   strings.NewReader(content),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Append adds one line to the object content (read-modify-write).
func (b *S3Backend) Append(ctx context.Context, line string) error {
	return appendLine(ctx, b, line)
}
