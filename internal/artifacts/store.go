package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/imrishuroy/go-certify/internal/aws"
)

// ContentTypePDF is the content type of every uploaded certificate.
const ContentTypePDF = "application/pdf"

// Store uploads rendered certificates and returns their public URL.
type Store interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

// Key returns the object key for the certificate with the given id.
func Key(id string) string {
	return id + ".pdf"
}

// S3Store uploads certificates to an S3 bucket as public-read objects.
type S3Store struct {
	client   aws.S3API
	bucket   string
	endpoint string // optional override, e.g. localstack
}

// NewS3Store returns an S3Store bound to bucket. When endpoint is empty the
// public URL uses the virtual-hosted AWS form.
func NewS3Store(client aws.S3API, bucket, endpoint string) *S3Store {
	return &S3Store{
		client:   client,
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// Put uploads body under key and returns the object's public URL.
func (s *S3Store) Put(ctx context.Context, key string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		ACL:         s3types.ObjectCannedACLPublicRead,
		Body:        bytes.NewReader(body),
		ContentType: awsString(ContentTypePDF),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", s.bucket, key, err)
	}
	return s.URL(key), nil
}

// URL returns the public URL of key.
func (s *S3Store) URL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func awsString(s string) *string { return &s }
