package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	BlobS3    = "s3"
	BlobMinIO = "minio"
)

type Config struct {
	Env                string        `env:"APP_ENV" env-default:"production"`
	Port               string        `env:"PORT" env-default:"8085"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat          string        `env:"LOG_FORMAT" env-default:"json"`
	SubjectHeader      string        `env:"AUTH_SUBJECT_HEADER" env-default:"X-Auth-Subject"`
	AllowedOrigin      string        `env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
	SwaggerHost        string        `env:"SWAGGER_HOST"`
	HTTPReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	HTTPWriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	HTTPIdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	Store              StoreConfig
	Blob               BlobConfig
	AWSRegion          string   `env:"AWS_REGION" env-default:"us-east-1"`
	AllowedContentType []string `env:"ALLOWED_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/gif,image/webp"`
}

// StoreConfig selects and addresses the preferences key-value store.
type StoreConfig struct {
	Backend          string `env:"STORE_BACKEND" env-default:"dynamodb"`
	TableName        string `env:"PREFERENCES_TABLE_NAME"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	DB               DBConfig
}

// DBConfig addresses PostgreSQL when STORE_BACKEND is postgres.
type DBConfig struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

// BlobConfig selects and addresses the profile image object store.
type BlobConfig struct {
	Backend        string        `env:"BLOB_BACKEND" env-default:"s3"`
	Bucket         string        `env:"S3_BUCKET_NAME"`
	Endpoint       string        `env:"S3_ENDPOINT"`
	AccessKey      string        `env:"S3_ACCESS_KEY"`
	SecretKey      string        `env:"S3_SECRET_KEY"`
	UseSSL         bool          `env:"S3_USE_SSL" env-default:"true"`
	UsePathStyle   bool          `env:"S3_USE_PATH_STYLE" env-default:"false"`
	UploadURLTTL   time.Duration `env:"UPLOAD_URL_TTL" env-default:"1h"`
	DownloadURLTTL time.Duration `env:"DOWNLOAD_URL_TTL" env-default:"1h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	for i := range cfg.AllowedContentType {
		cfg.AllowedContentType[i] = strings.ToLower(strings.TrimSpace(cfg.AllowedContentType[i]))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreDynamoDB, StorePostgres:
		if c.Store.TableName == "" {
			return fmt.Errorf("PREFERENCES_TABLE_NAME is required for store backend %s", c.Store.Backend)
		}
		if c.Store.Backend == StorePostgres && (c.Store.DB.Host == "" || c.Store.DB.User == "" || c.Store.DB.Name == "") {
			return errors.New("DB_HOST, DB_USER and DB_NAME are required for store backend postgres")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Blob.Backend {
	case BlobS3:
	case BlobMinIO:
		if c.Blob.Endpoint == "" || c.Blob.AccessKey == "" || c.Blob.SecretKey == "" {
			return errors.New("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required for blob backend minio")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.Blob.Backend)
	}

	if c.Blob.Bucket == "" {
		return errors.New("S3_BUCKET_NAME is required")
	}
	if c.Blob.UploadURLTTL <= 0 || c.Blob.DownloadURLTTL <= 0 {
		return errors.New("UPLOAD_URL_TTL and DOWNLOAD_URL_TTL must be positive")
	}
	if len(c.AllowedContentType) == 0 {
		return errors.New("ALLOWED_CONTENT_TYPES must not be empty")
	}
	return nil
}

// IsAllowedContentType reports whether uploads of mediaType may be presigned.
// mediaType must already be lowercased and stripped of parameters.
func (c *Config) IsAllowedContentType(mediaType string) bool {
	return slices.Contains(c.AllowedContentType, mediaType)
}
