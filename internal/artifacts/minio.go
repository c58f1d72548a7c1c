package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioOptions configures a MinioStore.
type MinioOptions struct {
	Endpoint  string // host:port
	AccessKey string
	SecretKey string
	Secure    bool
	Bucket    string
}

// MinioStore uploads certificates to an S3-compatible MinIO deployment.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	if !opts.Secure {
		zap.S().Warnf("Minio is not running in secure mode !")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket exists %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", opts.Bucket, err)
		}
		zap.S().Infof("created bucket %s", opts.Bucket)
	}

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// Put uploads body under key as a public-read PDF and returns its URL.
func (s *MinioStore) Put(ctx context.Context, key string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minioPutOptions())
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", s.bucket, key, err)
	}
	return objectURL(s.client.EndpointURL(), s.bucket, key), nil
}

func minioPutOptions() minio.PutObjectOptions {
	return minio.PutObjectOptions{
		ContentType:  ContentTypePDF,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}
}

func objectURL(endpoint *url.URL, bucket, key string) string {
	u := *endpoint
	u.Path = "/" + bucket + "/" + key
	return u.String()
}
