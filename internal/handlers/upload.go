package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateUploadURL godoc
// @Summary Create a presigned upload URL
// @Description Returns a time-limited PUT URL for a new profile image owned by the caller
// @Tags images
// @Accept json
// @Produce json
// @Param request body models.UploadURLRequest true "File name and content type"
// @Success 200 {object} models.UploadURLResponse
// @Failure 400 {object} apperrors.Body
// @Failure 401 {object} apperrors.Body
// @Failure 502 {object} apperrors.Body
// @Security BearerAuth
// @Router /upload-url [post]
func (h *Handler) CreateUploadURL(c *gin.Context) {
	subject := middleware.Subject(c)

	var req models.UploadURLRequest
	if err := json.NewDecoder(io.LimitReader(c.Request.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "must be a JSON object"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(c, validationError(err))
		return
	}

	contentType := mediaType(req.ContentType)
	if !h.cfg.IsAllowedContentType(contentType) {
		h.respondError(c, apperrors.NewValidation("contentType", "content type not permitted"))
		return
	}

	key, err := newImageKey(subject, req.FileName, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ttl := h.cfg.Blob.UploadURLTTL
	uploadURL, err := h.storage.PresignPut(c.Request.Context(), key, contentType, ttl)
	h.metrics.ObserveStore("presign_put", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("presign put", err))
		return
	}

	c.JSON(http.StatusOK, models.UploadURLResponse{
		UploadURL: uploadURL,
		Key:       key,
		ExpiresIn: int64(ttl.Seconds()),
	})
}
