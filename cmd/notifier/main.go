package main

import (
	"context"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-certify/internal/aws"
	"github.com/imrishuroy/go-certify/internal/config"
	"github.com/imrishuroy/go-certify/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	clients, err := aws.SharedClients(context.Background(), aws.Settings{
		Region:           cfg.Region,
		Offline:          cfg.Offline,
		DynamoDBEndpoint: cfg.DynamoDBEndpoint,
	})
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	p := NewProcessor(aws.NewMetricsPublisher(clients.CloudWatch, cfg.MetricsNamespace), logger)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"id":"local-certificate-1","grade":"A","new_record":true}`
		}
		event := lambdaevents.SQSEvent{
			Records: []lambdaevents.SQSMessage{
				{MessageId: "local-1", Body: testBody},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			logger.Fatal("local handler error", zap.Error(err))
		}
		return
	}

	lambda.Start(p.Handle)
}
