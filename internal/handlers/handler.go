package handlers

import (
	"reflect"
	"strings"

	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/metrics"
	"github.com/GunarsK-portfolio/profile-api/internal/repository"
	"github.com/GunarsK-portfolio/profile-api/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 16 << 10

type Handler struct {
	repo     repository.Repository
	storage  storage.BlobStore
	cfg      *config.Config
	log      zerolog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func New(repo repository.Repository, storage storage.BlobStore, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		repo:     repo,
		storage:  storage,
		cfg:      cfg,
		log:      log,
		metrics:  m,
		validate: validate,
	}
}
