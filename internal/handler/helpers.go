package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/domain"
)

// respondError maps domain errors to HTTP statuses. Ownership violations
// answer exactly like missing records so existence never leaks.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInsightNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionEnded):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrNotOnboarded):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		var completionErr *domain.CompletionError
		if errors.As(err, &completionErr) {
			slog.Error("generation failed", "error", err, "raw", completionErr.RawText)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "generation failed"})
		}
		slog.Error("request failed", "error", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
