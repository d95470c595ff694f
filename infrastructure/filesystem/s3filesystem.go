package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Files is the object storage used for punch imports and report exports.
type Files interface {
	ReadFile(ctx context.Context, bucket, key string, outStream io.Writer) error
	WriteFile(ctx context.Context, bucket, key string, body []byte, contentType string) error
	ListFiles(ctx context.Context, bucket, prefix string) ([]string, error)
}

type S3 struct {
	client *s3.Client
}

func NewS3(ctx context.Context, optFns ...func(*s3.Options)) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewS3FromConfig(cfg, optFns...), nil
}

func NewS3FromConfig(cfg aws.Config, optFns ...func(*s3.Options)) *S3 {
	return &S3{client: s3.NewFromConfig(cfg, optFns...)}
}

func (f *S3) ReadFile(ctx context.Context, bucket, key string, outStream io.Writer) error {
	// Get the object
	resp, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	// Write the S3 object data to the provided stream
	_, err = io.Copy(outStream, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}

	return nil
}

func (f *S3) WriteFile(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, bucket, err)
	}
	return nil
}

func (f *S3) ListFiles(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	paginator := s3.NewListObjectsV2Paginator(f.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}
