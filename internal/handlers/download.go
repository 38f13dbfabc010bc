package handlers

import (
	"net/http"
	"strings"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateDownloadURL godoc
// @Summary Create a presigned download URL
// @Description Returns a time-limited GET URL for an image owned by the caller
// @Tags images
// @Produce json
// @Param key path string true "Object key, e.g. users/{sub}/images/{id}.png"
// @Success 200 {object} models.DownloadURLResponse
// @Failure 401 {object} apperrors.Body
// @Failure 403 {object} apperrors.Body
// @Failure 404 {object} apperrors.Body
// @Failure 502 {object} apperrors.Body
// @Security BearerAuth
// @Router /download-url/{key} [get]
func (h *Handler) CreateDownloadURL(c *gin.Context) {
	subject := middleware.Subject(c)
	key := keyParam(c)

	// Ownership is checked before existence so foreign keys never leak.
	if !ownsKey(subject, key) {
		h.respondError(c, apperrors.ErrForbidden)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), key)
	h.metrics.ObserveStore("stat_object", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("stat object", err))
		return
	}
	if !exists {
		h.respondError(c, apperrors.ErrNotFound)
		return
	}

	ttl := h.cfg.Blob.DownloadURLTTL
	downloadURL, err := h.storage.PresignGet(c.Request.Context(), key, ttl)
	h.metrics.ObserveStore("presign_get", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("presign get", err))
		return
	}

	c.JSON(http.StatusOK, models.DownloadURLResponse{
		DownloadURL: downloadURL,
		ExpiresIn:   int64(ttl.Seconds()),
	})
}

// keyParam returns the catch-all key parameter without gin's leading slash.
func keyParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}
