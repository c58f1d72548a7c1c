package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Artifact backends
const (
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config is the process-wide configuration, read from the environment.
type Config struct {
	// Offline switches the record store to DynamoDB Local and mirrors PDFs to disk.
	Offline  bool   `mapstructure:"IS_OFFLINE"`
	RunLocal bool   `mapstructure:"RUN_LOCAL"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	LogLevel string `mapstructure:"LOGGING_LEVEL"`

	Region           string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`
	S3Endpoint       string `mapstructure:"S3_ENDPOINT"`

	CertificatesTable  string `mapstructure:"CERTIFICATES_TABLE"`
	CertificatesBucket string `mapstructure:"CERTIFICATES_BUCKET"`
	ArtifactBackend    string `mapstructure:"ARTIFACT_BACKEND"`

	MinioURL       string `mapstructure:"MINIO_URL"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioSecure    bool   `mapstructure:"MINIO_SECURE"`

	QueueURL         string `mapstructure:"CERTIFICATES_QUEUE_URL"`
	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`

	ChromePath        string `mapstructure:"CHROME_PATH"`
	ChromeUserDataDir string `mapstructure:"CHROME_USER_DATA_DIR"`
	DebugDir          string `mapstructure:"DEBUG_DIR"`
}

var defaults = map[string]any{
	"IS_OFFLINE":             false,
	"RUN_LOCAL":              false,
	"HTTP_ADDR":              ":8080",
	"LOGGING_LEVEL":          "info",
	"AWS_REGION":             "us-east-1",
	"DYNAMODB_ENDPOINT":      "http://localhost:8000",
	"S3_ENDPOINT":            "",
	"CERTIFICATES_TABLE":     "users_certificate",
	"CERTIFICATES_BUCKET":    "svlessicertify",
	"ARTIFACT_BACKEND":       BackendS3,
	"MINIO_URL":              "",
	"MINIO_ACCESS_KEY":       "",
	"MINIO_SECRET_KEY":       "",
	"MINIO_SECURE":           true,
	"CERTIFICATES_QUEUE_URL": "",
	"METRICS_NAMESPACE":      "Certify",
	"CHROME_PATH":            "",
	"CHROME_USER_DATA_DIR":   "/tmp/chrome-user-data",
	"DEBUG_DIR":              ".",
}

// Load reads the configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ArtifactBackend = strings.ToLower(strings.TrimSpace(cfg.ArtifactBackend))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ArtifactBackend {
	case BackendS3:
	case BackendMinio:
		if c.MinioURL == "" {
			return fmt.Errorf("MINIO_URL must be set when ARTIFACT_BACKEND=%s", BackendMinio)
		}
	default:
		return fmt.Errorf("unknown ARTIFACT_BACKEND %q", c.ArtifactBackend)
	}
	if c.CertificatesTable == "" {
		return fmt.Errorf("CERTIFICATES_TABLE must not be empty")
	}
	if c.CertificatesBucket == "" {
		return fmt.Errorf("CERTIFICATES_BUCKET must not be empty")
	}
	return nil
}
