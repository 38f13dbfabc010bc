package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// =============================================================================
// Delete Image Tests
// =============================================================================

func TestDeleteImage_Success(t *testing.T) {
	var deletedKey string
	store := &mockStorage{
		deleteFunc: func(_ context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}
	router := setupTestRouter(newTestHandler(&mockRepository{}, store))

	w := performRequest(router, http.MethodDelete, "/delete-image/"+testKey, nil, asSubject(testSubject))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", w.Body.String())
	}
	if deletedKey != testKey {
		t.Errorf("expected key %s, got %s", testKey, deletedKey)
	}
}

func TestDeleteImage_MissingKeyIsIdempotent(t *testing.T) {
	deleted := make(map[string]bool)
	store := &mockStorage{
		deleteFunc: func(_ context.Context, key string) error {
			deleted[key] = true
			return nil
		},
	}
	router := setupTestRouter(newTestHandler(&mockRepository{}, store))

	for i := 0; i < 2; i++ {
		w := performRequest(router, http.MethodDelete, "/delete-image/"+testKey, nil, asSubject(testSubject))
		if w.Code != http.StatusNoContent {
			t.Errorf("attempt %d: expected status %d, got %d", i+1, http.StatusNoContent, w.Code)
		}
	}
}

func TestDeleteImage_ForeignKeyForbidden(t *testing.T) {
	called := false
	store := &mockStorage{
		deleteFunc: func(_ context.Context, _ string) error {
			called = true
			return nil
		},
	}
	router := setupTestRouter(newTestHandler(&mockRepository{}, store))

	w := performRequest(router, http.MethodDelete, "/delete-image/"+testOtherKey, nil, asSubject(testSubject))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if called {
		t.Error("blob store must not be called for foreign keys")
	}
}

func TestDeleteImage_StorageError(t *testing.T) {
	store := &mockStorage{
		deleteFunc: func(_ context.Context, _ string) error {
			return errors.New("access denied")
		},
	}
	router := setupTestRouter(newTestHandler(&mockRepository{}, store))

	w := performRequest(router, http.MethodDelete, "/delete-image/"+testKey, nil, asSubject(testSubject))

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, w.Code)
	}
}
