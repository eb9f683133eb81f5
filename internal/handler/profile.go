package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/middleware"
	"github.com/elevatepath/elevatepath/internal/service"
)

type profileView struct {
	ID         string   `json:"id"`
	Email      string   `json:"email,omitempty"`
	Name       string   `json:"name,omitempty"`
	Industry   string   `json:"industry,omitempty"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills"`
}

func toProfileView(u *domain.User) profileView {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return profileView{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Industry:   u.Industry,
		Experience: u.Experience,
		Bio:        u.Bio,
		Skills:     skills,
	}
}

// GetProfile returns the caller's profile.
// GET /v1/profile
func (h *Handler) GetProfile(c echo.Context) error {
	user := middleware.GetUser(c)
	if user == nil {
		return respondError(c, domain.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, toProfileView(user))
}

type updateProfileRequest struct {
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

// UpdateProfile applies the onboarding form.
// PUT /v1/profile
func (h *Handler) UpdateProfile(c echo.Context) error {
	user := middleware.GetUser(c)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Industry == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "industry is required"})
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user, service.ProfileUpdate{
		Industry:   req.Industry,
		Experience: req.Experience,
		Bio:        req.Bio,
		Skills:     req.Skills,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileView(updated))
}

// OnboardingStatus reports whether the caller has picked an industry yet.
// GET /v1/profile/onboarding-status
func (h *Handler) OnboardingStatus(c echo.Context) error {
	user := middleware.GetUser(c)
	if user == nil {
		return respondError(c, domain.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_onboarded": user.IsOnboarded()})
}
