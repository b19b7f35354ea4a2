package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ludotheca/ludotheca_backend/internal/apperrors"
)

// statusForError maps the application error taxonomy onto HTTP status codes.
// Invalid state transitions and business-rule refusals are 422: the request
// was well-formed, the aggregate just cannot do that right now.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrTransientStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error response for a service error. 5xx
// responses hide the underlying error text from the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
