// Package s3 provides a content store backed by Amazon S3 or any
// S3-compatible object storage.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// S3ContentStore stores file bodies as S3 objects, one per ContentID.
//
// Every read hits S3; there is no local caching. Concurrent writes to the
// same ContentID are last-write-wins under S3's consistency model.
type S3ContentStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// S3ContentStoreConfig contains configuration for the S3 content store.
type S3ContentStoreConfig struct {
	// Client is the configured S3 client.
	Client *s3.Client

	// Bucket is the S3 bucket name. The bucket must already exist.
	Bucket string

	// KeyPrefix is an optional prefix for all object keys.
	// Example: "drive-cli/content/" yields keys like "drive-cli/content/c-abc123".
	KeyPrefix string
}

// NewS3ContentStore creates an S3-backed content store and verifies bucket
// access. The bucket is not created if missing.
func NewS3ContentStore(ctx context.Context, cfg S3ContentStoreConfig) (*S3ContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	_, err := cfg.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &S3ContentStore{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (s *S3ContentStore) key(id drive.ContentID) string {
	return s.keyPrefix + string(id)
}

// Read downloads the full object stored under id.
func (s *S3ContentStore) Read(ctx context.Context, id drive.ContentID) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get object for %s: %w", id, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body for %s: %w", id, err)
	}
	return data, nil
}

// Write uploads data as the object for id, replacing any existing object.
func (s *S3ContentStore) Write(ctx context.Context, id drive.ContentID, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object for %s: %w", id, err)
	}
	return nil
}

// Copy duplicates the object under src into dst using a server-side copy,
// avoiding a download round trip.
func (s *S3ContentStore) Copy(ctx context.Context, src, dst drive.ContentID) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(s.key(dst)),
		CopySource: aws.String(s.bucket + "/" + s.key(src)),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("content %s: %w", src, content.ErrContentNotFound)
		}
		return fmt.Errorf("failed to copy object %s to %s: %w", src, dst, err)
	}
	return nil
}

// Delete removes the object for id. S3 DELETE is idempotent, so deleting a
// missing object succeeds.
func (s *S3ContentStore) Delete(ctx context.Context, id drive.ContentID) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object for %s: %w", id, err)
	}
	return nil
}

// Exists reports whether an object is stored under id.
func (s *S3ContentStore) Exists(ctx context.Context, id drive.ContentID) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object for %s: %w", id, err)
	}
	return true, nil
}

// Size returns the object size from a HEAD request without downloading.
func (s *S3ContentStore) Size(ctx context.Context, id drive.ContentID) (uint64, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
		}
		return 0, fmt.Errorf("failed to head object for %s: %w", id, err)
	}
	if out.ContentLength == nil {
		return 0, nil
	}
	return uint64(*out.ContentLength), nil
}

// HealthCheck verifies the bucket is reachable.
func (s *S3ContentStore) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", content.ErrUnavailable, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no resources requiring cleanup.
func (s *S3ContentStore) Close() error { return nil }

// isNotFound reports whether err is an S3 missing-key or missing-object
// error. HeadObject returns NotFound where GetObject returns NoSuchKey.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
