package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func memoryMinIOConfig() *config.Config {
	return &config.Config{
		SubjectHeader: "X-Auth-Subject",
		AllowedOrigin: "*",
		AWSRegion:     "us-east-1",
		Store:         config.StoreConfig{Backend: config.StoreMemory},
		Blob: config.BlobConfig{
			Backend:        config.BlobMinIO,
			Bucket:         "profile-images",
			Endpoint:       "http://localhost:9000",
			AccessKey:      "minioadmin",
			SecretKey:      "minioadmin",
			UploadURLTTL:   time.Hour,
			DownloadURLTTL: time.Hour,
		},
		AllowedContentType: []string{"image/png"},
	}
}

func TestNew_MemoryAndMinIO(t *testing.T) {
	a, err := New(context.Background(), memoryMinIOConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = a.Close() }()

	req := httptest.NewRequest(http.MethodGet, "/user/preferences", nil)
	req.Header.Set("X-Auth-Subject", "user-1")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"theme":null`) {
		t.Errorf("expected default preferences, got %s", w.Body.String())
	}

	// Presigning is offline, so an upload URL is produced without a server.
	req = httptest.NewRequest(http.MethodPost, "/upload-url", strings.NewReader(`{"fileName":"a.png","contentType":"image/png"}`))
	req.Header.Set("X-Auth-Subject", "user-1")
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "users/user-1/images/") {
		t.Errorf("expected key scoped to caller, got %s", w.Body.String())
	}
}

func TestNew_UnknownBackends(t *testing.T) {
	cfg := memoryMinIOConfig()
	cfg.Store.Backend = "redis"
	if _, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Error("expected error for unknown store backend")
	}

	cfg = memoryMinIOConfig()
	cfg.Blob.Backend = "gcs"
	if _, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Error("expected error for unknown blob backend")
	}
}
