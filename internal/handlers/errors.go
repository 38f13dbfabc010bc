package handlers

import (
	"errors"
	"fmt"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the caller-safe form of err. Server-side failures are
// logged with their cause.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, body := apperrors.Status(err)

	event := h.log.Debug()
	if status >= 500 {
		event = h.log.Error()
	}
	event.Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("subject", middleware.Subject(c)).
		Int("status", status).
		Msg("request failed")

	c.JSON(status, body)
}

// validationError converts the first validator failure into a ValidationError
// naming the JSON field.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperrors.NewValidation("body", "invalid request")
	}

	fe := errs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "oneof":
		msg = "must be one of: " + fe.Param()
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		msg = "is invalid"
	}
	return apperrors.NewValidation(fe.Field(), msg)
}
