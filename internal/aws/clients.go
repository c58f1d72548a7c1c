package aws

import (
	"context"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// AWSClients bundles all service clients for convenience.
type AWSClients struct {
	DynamoDB   DynamoDBAPI
	S3         S3API
	SQS        SQSAPI
	CloudWatch CloudWatchAPI
}

// NewAWSClients loads AWS config and returns concrete service clients that implement our interfaces.
func NewAWSClients(ctx context.Context, s Settings) (*AWSClients, error) {
	cfg, err := LoadAWSConfig(ctx, s)
	if err != nil {
		return nil, err
	}

	return &AWSClients{
		DynamoDB: dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if s.Offline && s.DynamoDBEndpoint != "" {
				o.BaseEndpoint = sdkaws.String(s.DynamoDBEndpoint)
			}
		}),
		S3: s3.NewFromConfig(cfg, func(o *s3.Options) {
			if s.S3Endpoint != "" {
				o.BaseEndpoint = sdkaws.String(s.S3Endpoint)
				o.UsePathStyle = true
			}
		}),
		SQS:        sqs.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
	}, nil
}

var (
	sharedOnce    sync.Once
	sharedClients *AWSClients
	sharedErr     error
)

// SharedClients returns the process-wide client bundle, building it on first
// use. Warm Lambda invocations reuse the same connections. Settings passed
// after the first call are ignored.
func SharedClients(ctx context.Context, s Settings) (*AWSClients, error) {
	sharedOnce.Do(func() {
		sharedClients, sharedErr = NewAWSClients(ctx, s)
	})
	return sharedClients, sharedErr
}
