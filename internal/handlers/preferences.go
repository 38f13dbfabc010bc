package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/GunarsK-portfolio/profile-api/internal/models"
	"github.com/GunarsK-portfolio/profile-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// GetPreferences godoc
// @Summary Get preferences of the caller
// @Description Returns the stored preferences, or null fields when none were ever set
// @Tags preferences
// @Produce json
// @Success 200 {object} models.UserPreferences
// @Failure 401 {object} apperrors.Body
// @Failure 502 {object} apperrors.Body
// @Security BearerAuth
// @Router /user/preferences [get]
func (h *Handler) GetPreferences(c *gin.Context) {
	subject := middleware.Subject(c)

	prefs, err := h.repo.GetPreferences(c.Request.Context(), subject)
	if errors.Is(err, repository.ErrNotFound) {
		prefs, err = models.DefaultPreferences(subject), nil
	}
	h.metrics.ObserveStore("get_preferences", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("get preferences", err))
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary Update preferences of the caller
// @Description Merges the supplied fields into the stored preferences; null clears a field
// @Tags preferences
// @Accept json
// @Produce json
// @Param preferences body models.PreferencesUpdate true "Fields to update"
// @Success 200 {object} models.UserPreferences
// @Failure 400 {object} apperrors.Body
// @Failure 401 {object} apperrors.Body
// @Failure 502 {object} apperrors.Body
// @Security BearerAuth
// @Router /user/preferences [put]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	subject := middleware.Subject(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		h.respondError(c, apperrors.NewValidation("body", "could not read request body"))
		return
	}
	if len(body) > maxBodyBytes {
		h.respondError(c, apperrors.NewValidation("body", "request body too large"))
		return
	}

	patch, err := h.parsePreferencesPatch(subject, body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	prefs, err := h.repo.UpsertPreferences(c.Request.Context(), subject, patch)
	h.metrics.ObserveStore("upsert_preferences", err)
	if err != nil {
		h.respondError(c, apperrors.NewStorage("upsert preferences", err))
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// parsePreferencesPatch distinguishes absent fields (untouched) from
// explicit nulls (cleared), so the body is decoded field by field.
func (h *Handler) parsePreferencesPatch(subject string, body []byte) (models.PreferencesPatch, error) {
	var patch models.PreferencesPatch

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return patch, apperrors.NewValidation("body", "must be a JSON object")
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var update models.PreferencesUpdate
	for _, name := range names {
		field := models.Field(name)
		var target **string
		switch field {
		case models.FieldTheme:
			target = &update.Theme
		case models.FieldDisplayName:
			target = &update.DisplayName
		case models.FieldDisplayPicture:
			target = &update.DisplayPicture
		default:
			return patch, apperrors.NewValidation(name, "unknown field")
		}

		value := bytes.TrimSpace(raw[name])
		if bytes.Equal(value, []byte("null")) {
			patch.Clear = append(patch.Clear, field)
			continue
		}

		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return patch, apperrors.NewValidation(name, "must be a string or null")
		}
		*target = &s
	}

	if err := h.validate.Struct(update); err != nil {
		return patch, validationError(err)
	}
	if update.DisplayPicture != nil && !ownsKey(subject, *update.DisplayPicture) {
		return patch, apperrors.NewValidation(string(models.FieldDisplayPicture), "must reference one of your own images")
	}

	patch.Set = make(map[models.Field]string)
	if update.Theme != nil {
		patch.Set[models.FieldTheme] = *update.Theme
	}
	if update.DisplayName != nil {
		patch.Set[models.FieldDisplayName] = *update.DisplayName
	}
	if update.DisplayPicture != nil {
		patch.Set[models.FieldDisplayPicture] = *update.DisplayPicture
	}
	return patch, nil
}
