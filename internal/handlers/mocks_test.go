package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/metrics"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/GunarsK-portfolio/profile-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// =============================================================================
// Test Constants
// =============================================================================

const (
	testSubject      = "0b6c1a52-7f1e-4c5e-9d59-2f4c1f0f1a11"
	testOtherSubject = "9a1f8c3e-1111-4d2b-8e0f-6b3c2d1e0f22"
	testKey          = "users/" + testSubject + "/images/0191b5a4-aaaa-7bbb-8ccc-123456789abc.png"
	testOtherKey     = "users/" + testOtherSubject + "/images/0191b5a4-aaaa-7bbb-8ccc-123456789abc.png"
	testBucket       = "profile-images"
	testUploadTTL    = 15 * time.Minute
	testDownloadTTL  = time.Hour
)

// =============================================================================
// Mock Repository
// =============================================================================

type mockRepository struct {
	getPreferencesFunc    func(ctx context.Context, userID string) (*models.UserPreferences, error)
	upsertPreferencesFunc func(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error)
	pingFunc              func(ctx context.Context) error
}

func (m *mockRepository) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if m.getPreferencesFunc != nil {
		return m.getPreferencesFunc(ctx, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) UpsertPreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error) {
	if m.upsertPreferencesFunc != nil {
		return m.upsertPreferencesFunc(ctx, userID, patch)
	}
	prefs := models.DefaultPreferences(userID)
	patch.Apply(prefs)
	return prefs, nil
}

func (m *mockRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// =============================================================================
// Mock Storage
// =============================================================================

type mockStorage struct {
	presignPutFunc func(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	presignGetFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
	deleteFunc     func(ctx context.Context, key string) error
	existsFunc     func(ctx context.Context, key string) (bool, error)
}

func (m *mockStorage) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if m.presignPutFunc != nil {
		return m.presignPutFunc(ctx, key, contentType, ttl)
	}
	return "https://storage.example.com/" + key + "?X-Amz-Signature=put", nil
}

func (m *mockStorage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.presignGetFunc != nil {
		return m.presignGetFunc(ctx, key, ttl)
	}
	return "https://storage.example.com/" + key + "?X-Amz-Signature=get", nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

func (m *mockStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, key)
	}
	return true, nil
}

// =============================================================================
// Test Helpers
// =============================================================================

type ctxKey struct{}

func createTestConfig() *config.Config {
	return &config.Config{
		SubjectHeader: "X-Auth-Subject",
		Blob: config.BlobConfig{
			Backend:        config.BlobS3,
			Bucket:         testBucket,
			UploadURLTTL:   testUploadTTL,
			DownloadURLTTL: testDownloadTTL,
		},
		AllowedContentType: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	}
}

func newTestHandler(repo repository.Repository, store *mockStorage) *Handler {
	if store == nil {
		store = &mockStorage{}
	}
	return New(repo, store, createTestConfig(), zerolog.Nop(), metrics.New(prometheus.NewRegistry()))
}

// setupTestRouter registers every operation behind the subject middleware,
// the way routes.Setup does.
func setupTestRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := router.Group("/")
	auth.Use(middleware.NewSubjectMiddleware("X-Auth-Subject").RequireSubject())
	{
		auth.GET("/user/preferences", handler.GetPreferences)
		auth.PUT("/user/preferences", handler.UpdatePreferences)
		auth.POST("/upload-url", handler.CreateUploadURL)
		auth.GET("/download-url/*key", handler.CreateDownloadURL)
		auth.DELETE("/delete-image/*key", handler.DeleteImage)
	}
	return router
}

func performRequest(router *gin.Engine, method, path string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.Header.Set(key, value)
		}
	}
	router.ServeHTTP(w, req)
	return w
}

func asSubject(subject string) map[string]string {
	return map[string]string{"X-Auth-Subject": subject}
}

func strPtr(s string) *string { return &s }
