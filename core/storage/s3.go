package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"agenda-api/core/config"
	"agenda-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage uploads binary objects and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type s3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewStorage builds an S3-backed storage from the environment. Returns nil
// when no bucket is configured; callers treat uploads as unavailable then.
func NewStorage() Storage {
	bucket := config.Get("S3_BUCKET")
	if bucket == "" {
		logger.Warn("S3 bucket not configured, uploads disabled")
		return nil
	}

	region := config.GetSafe("S3_REGION", "us-east-1")
	endpoint := config.Get("S3_ENDPOINT")
	creds := credentials.NewStaticCredentialsProvider(
		config.Get("S3_ACCESS_KEY"),
		config.Get("S3_SECRET_KEY"),
		"",
	)

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: creds,
	}, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := config.Get("S3_PUBLIC_URL")
	if publicURL == "" {
		if endpoint != "" {
			publicURL = strings.TrimSuffix(endpoint, "/") + "/" + bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	logger.Info("S3 storage initialized", "bucket", bucket, "region", region)
	return &s3Storage{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *s3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload", err)
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.publicURL + "/" + key, nil
}
