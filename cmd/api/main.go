package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-certify/internal/artifacts"
	"github.com/imrishuroy/go-certify/internal/aws"
	"github.com/imrishuroy/go-certify/internal/certificates"
	"github.com/imrishuroy/go-certify/internal/config"
	"github.com/imrishuroy/go-certify/internal/handlers"
	"github.com/imrishuroy/go-certify/internal/issuance"
	"github.com/imrishuroy/go-certify/internal/logging"
	"github.com/imrishuroy/go-certify/internal/render"
)

func setupRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	clients, err := aws.SharedClients(ctx, aws.Settings{
		Region:           cfg.Region,
		Offline:          cfg.Offline,
		DynamoDBEndpoint: cfg.DynamoDBEndpoint,
		S3Endpoint:       cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("init aws clients: %w", err)
	}

	store, err := newArtifactStore(ctx, cfg, clients)
	if err != nil {
		return nil, err
	}

	tmpl, err := render.NewTemplate()
	if err != nil {
		return nil, err
	}

	opts := []issuance.Option{issuance.WithLogger(logger)}
	if cfg.QueueURL != "" {
		opts = append(opts, issuance.WithPublisher(aws.NewPublisher(clients.SQS, cfg.QueueURL)))
	}

	svc := issuance.NewService(
		certificates.NewStore(clients.DynamoDB, cfg.CertificatesTable),
		store,
		render.NewChromeRenderer(render.ChromeOptions{
			ExecPath:    cfg.ChromePath,
			UserDataDir: cfg.ChromeUserDataDir,
		}),
		tmpl,
		opts...,
	)

	return handlers.NewRouter(handlers.HandlerConfig{Service: svc, Logger: logger}), nil
}

func newArtifactStore(ctx context.Context, cfg *config.Config, clients *aws.AWSClients) (artifacts.Store, error) {
	var store artifacts.Store
	switch cfg.ArtifactBackend {
	case config.BackendMinio:
		ms, err := artifacts.NewMinioStore(ctx, artifacts.MinioOptions{
			Endpoint:  cfg.MinioURL,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Secure:    cfg.MinioSecure,
			Bucket:    cfg.CertificatesBucket,
		})
		if err != nil {
			return nil, err
		}
		store = ms
	default:
		store = artifacts.NewS3Store(clients.S3, cfg.CertificatesBucket, cfg.S3Endpoint)
	}

	// offline runs keep a local copy of every rendered certificate
	if cfg.Offline {
		store = artifacts.NewDiskMirror(store, cfg.DebugDir)
	}
	return store, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)
	r, err := setupRouter(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		logger.Info("running local server", zap.String("addr", cfg.HTTPAddr), zap.Bool("offline", cfg.Offline))
		if err := r.Run(cfg.HTTPAddr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
