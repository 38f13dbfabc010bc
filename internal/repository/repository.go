package repository

import (
	"context"
	"errors"

	"github.com/GunarsK-portfolio/profile-api/internal/models"
)

// ErrNotFound is returned by GetPreferences when the subject has no record.
var ErrNotFound = errors.New("preferences not found")

// Repository is the key-value store holding one preferences record per subject.
type Repository interface {
	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	// UpsertPreferences applies patch atomically to the record of userID,
	// creating it when absent, and returns the resulting record.
	UpsertPreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error)
	Ping(ctx context.Context) error
}
