package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/auth"
	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/service"
)

const userContextKey = "user"

// GetUser extracts the authenticated user from the request context.
func GetUser(c echo.Context) *domain.User {
	u, ok := c.Get(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// Authenticate resolves the bearer token to an identity and loads (creating
// on first sight) the matching user into the request context. Requests
// without a resolvable identity stop here with 401.
func Authenticate(resolver auth.Resolver, users *service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			identity, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				}
				slog.Error("identity resolution failed", "error", err)
				return c.JSON(http.StatusBadGateway, map[string]string{"error": "identity provider unavailable"})
			}

			user, created, err := users.FindOrCreate(c.Request().Context(), identity.Subject, identity.Email, identity.Name)
			if err != nil {
				slog.Error("load user failed", "error", err, "subject", identity.Subject)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
			if created {
				slog.Info("user registered", "user_id", user.ID)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
