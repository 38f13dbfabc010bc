package handlers

import (
	"net/http"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DeleteImage godoc
// @Summary Delete an image
// @Description Deletes an image owned by the caller; deleting a missing image succeeds
// @Tags images
// @Param key path string true "Object key, e.g. users/{sub}/images/{id}.png"
// @Success 204
// @Failure 401 {object} apperrors.Body
// @Failure 403 {object} apperrors.Body
// @Failure 502 {object} apperrors.Body
// @Security BearerAuth
// @Router /delete-image/{key} [delete]
func (h *Handler) DeleteImage(c *gin.Context) {
	subject := middleware.Subject(c)
	key := keyParam(c)

	if !ownsKey(subject, key) {
		h.respondError(c, apperrors.ErrForbidden)
		return
	}

	err := h.storage.Delete(c.Request.Context(), key)
	h.metrics.ObserveStore("delete_object", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("delete object", err))
		return
	}

	c.Status(http.StatusNoContent)
}
