package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Placeholder credentials accepted by DynamoDB Local.
const (
	offlineAccessKey = "x"
	offlineSecretKey = "x"
)

// Settings selects between the managed AWS endpoints and a local/offline setup.
type Settings struct {
	Region           string
	Offline          bool
	DynamoDBEndpoint string // used only when Offline
	S3Endpoint       string // optional, e.g. localstack
}

func LoadAWSConfig(ctx context.Context, s Settings) (sdkaws.Config, error) {
	region := s.Region
	if region == "" {
		region = "us-east-1" // default fallback
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if s.Offline {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(offlineAccessKey, offlineSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cfg, nil
}
