package checks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReadFunc returns the body of a default rules document.
type ReadFunc func(name string) ([]byte, error)

// CheckDocuments returns the rules documents missing from bucket under prefix.
func CheckDocuments(ctx context.Context, client storage.Client, bucket, prefix string, names []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, name := range names {
		key := prefix + name
		opts := minio.ListObjectsOptions{
			Prefix:    key,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == key {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// FixDocuments uploads the default body of every missing document, creating
// the bucket first when it does not exist.
func FixDocuments(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger, missing []string, read ReadFunc) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created bucket", zap.String("bucket", bucket))
	}

	for _, name := range missing {
		body, err := read(name)
		if err != nil {
			return fmt.Errorf("failed to read default document %s: %w", name, err)
		}
		key := prefix + name
		_, err = client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: "application/json"})
		if err != nil {
			logger.Error("Failed to upload rules document", zap.String("object", key), zap.Error(err))
			return fmt.Errorf("failed to upload %s: %w", key, err)
		}
		logger.Info("Uploaded rules document", zap.String("object", key))
	}
	return nil
}
