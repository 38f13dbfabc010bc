package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/portfolio-common/database"
	"github.com/GunarsK-portfolio/portfolio-common/health"
	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/handlers"
	"github.com/GunarsK-portfolio/profile-api/internal/healthcheck"
	"github.com/GunarsK-portfolio/profile-api/internal/metrics"
	"github.com/GunarsK-portfolio/profile-api/internal/repository"
	"github.com/GunarsK-portfolio/profile-api/internal/routes"
	"github.com/GunarsK-portfolio/profile-api/internal/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const healthTimeout = 3 * time.Second

// App is the wired service: a gin engine serving every route plus the
// cleanup for resources opened while building it.
type App struct {
	Router *gin.Engine
	close  func() error
}

// Close releases the PostgreSQL pool when one was opened.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// New builds stores, blob storage, health checks, handlers and routes from
// cfg. Metrics are registered with reg.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
		}
		awsCfg = &loaded
		return loaded, nil
	}

	healthAgg := health.NewAggregator(healthTimeout)

	repo, closeRepo, err := newRepository(ctx, cfg, loadAWS, healthAgg)
	if err != nil {
		return nil, err
	}

	blobs, err := newBlobStore(cfg, loadAWS, healthAgg)
	if err != nil {
		if closeRepo != nil {
			_ = closeRepo()
		}
		return nil, err
	}

	m := metrics.New(reg)
	handler := handlers.New(repo, blobs, cfg, log, m)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, handler, cfg, m, healthAgg, log)

	log.Info().
		Str("store", cfg.Store.Backend).
		Str("blob", cfg.Blob.Backend).
		Str("bucket", cfg.Blob.Bucket).
		Msg("application initialized")

	return &App{Router: router, close: closeRepo}, nil
}

func newRepository(ctx context.Context, cfg *config.Config, loadAWS func() (aws.Config, error), healthAgg *health.Aggregator) (repository.Repository, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreDynamoDB:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.Store.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Store.DynamoDBEndpoint)
			}
		})
		repo := repository.NewDynamoDB(client, cfg.Store.TableName)
		healthAgg.Register(healthcheck.NewPingChecker("dynamodb", repo.Ping))
		return repo, nil, nil

	case config.StorePostgres:
		db, err := repository.OpenPostgres(database.PostgresConfig{
			Host:     cfg.Store.DB.Host,
			Port:     cfg.Store.DB.Port,
			User:     cfg.Store.DB.User,
			Password: cfg.Store.DB.Password,
			DBName:   cfg.Store.DB.Name,
			SSLMode:  cfg.Store.DB.SSLMode,
			TimeZone: "UTC",
		})
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() error { return database.CloseDB(db) }
		if err := repository.MigratePostgres(ctx, db, cfg.Store.TableName); err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		healthAgg.Register(health.NewPostgresChecker(db))
		return repository.NewPostgres(db, cfg.Store.TableName), closeDB, nil

	case config.StoreMemory:
		repo := repository.NewMemory()
		healthAgg.Register(healthcheck.NewPingChecker("memory", repo.Ping))
		return repo, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func newBlobStore(cfg *config.Config, loadAWS func() (aws.Config, error), healthAgg *health.Aggregator) (storage.BlobStore, error) {
	switch cfg.Blob.Backend {
	case config.BlobMinIO:
		store, err := storage.NewMinIO(storage.MinIOConfig{
			Endpoint:  cfg.Blob.Endpoint,
			AccessKey: cfg.Blob.AccessKey,
			SecretKey: cfg.Blob.SecretKey,
			UseSSL:    cfg.Blob.UseSSL,
			Region:    cfg.AWSRegion,
			Bucket:    cfg.Blob.Bucket,
		})
		if err != nil {
			return nil, err
		}
		healthAgg.Register(health.NewMinIOChecker(store.Client(), cfg.Blob.Bucket))
		return store, nil

	case config.BlobS3:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Blob.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Blob.Endpoint)
			}
			if cfg.Blob.AccessKey != "" && cfg.Blob.SecretKey != "" {
				o.Credentials = credentials.NewStaticCredentialsProvider(cfg.Blob.AccessKey, cfg.Blob.SecretKey, "")
			}
			o.UsePathStyle = cfg.Blob.UsePathStyle
		})
		store := storage.NewS3(client, s3.NewPresignClient(client), cfg.Blob.Bucket)
		healthAgg.Register(healthcheck.NewPingChecker("s3", store.Ping))
		return store, nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
}
