package repository

import (
	"context"
	"sync"

	"github.com/GunarsK-portfolio/profile-api/internal/models"
)

type memoryRepository struct {
	mu    sync.Mutex
	items map[string]models.UserPreferences
}

// NewMemory returns a process-local store for development and tests.
func NewMemory() Repository {
	return &memoryRepository{items: make(map[string]models.UserPreferences)}
}

func (r *memoryRepository) GetPreferences(_ context.Context, userID string) (*models.UserPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.items[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePreferences(prefs), nil
}

func (r *memoryRepository) UpsertPreferences(_ context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.items[userID]
	if !ok {
		prefs = models.UserPreferences{UserID: userID}
	}
	patch.Apply(&prefs)
	r.items[userID] = *clonePreferences(prefs)

	return clonePreferences(prefs), nil
}

func (r *memoryRepository) Ping(context.Context) error {
	return nil
}

func clonePreferences(p models.UserPreferences) *models.UserPreferences {
	return &models.UserPreferences{
		UserID:         p.UserID,
		Theme:          cloneString(p.Theme),
		DisplayName:    cloneString(p.DisplayName),
		DisplayPicture: cloneString(p.DisplayPicture),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
