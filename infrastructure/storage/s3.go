package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"media-catalog/infrastructure/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FolderThumbnails is the object-key prefix for thumbnail assets.
const FolderThumbnails = "thumbnails"

// S3Config holds S3 client configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store implements the durable asset store on top of S3 with a
// streaming multipart uploader.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
}

// NewS3Store creates an S3-backed asset store. Credentials fall back to
// AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, then the default chain.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	} else {
		logger.GetLogger().Warn("S3 store using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024 // 5MB parts for streaming
	})
	return &S3Store{uploader: uploader, bucket: cfg.Bucket}, nil
}

// Put streams body into the bucket and returns the stored object key.
func (s *S3Store) Put(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s", FolderThumbnails, filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
