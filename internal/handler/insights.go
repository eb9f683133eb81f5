package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/middleware"
)

type insightView struct {
	Industry          string               `json:"industry"`
	SalaryRanges      []domain.SalaryRange `json:"salary_ranges"`
	GrowthRate        float64              `json:"growth_rate"`
	DemandLevel       string               `json:"demand_level"`
	TopSkills         []string             `json:"top_skills"`
	MarketOutlook     string               `json:"market_outlook"`
	KeyTrends         []string             `json:"key_trends"`
	RecommendedSkills []string             `json:"recommended_skills"`
	NextUpdate        time.Time            `json:"next_update"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func toInsightView(ins *domain.IndustryInsight) insightView {
	return insightView{
		Industry:          ins.Industry,
		SalaryRanges:      ins.SalaryRanges,
		GrowthRate:        ins.GrowthRate,
		DemandLevel:       string(ins.DemandLevel),
		TopSkills:         ins.TopSkills,
		MarketOutlook:     string(ins.MarketOutlook),
		KeyTrends:         ins.KeyTrends,
		RecommendedSkills: ins.RecommendedSkills,
		NextUpdate:        ins.NextUpdate,
		UpdatedAt:         ins.UpdatedAt,
	}
}

// GetInsights returns the stored market snapshot for the caller's industry.
// GET /v1/insights
func (h *Handler) GetInsights(c echo.Context) error {
	user := middleware.GetUser(c)

	ins, err := h.insightService.GetForUser(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toInsightView(ins))
}

// RefreshInsights regenerates the snapshot for the caller's industry.
// POST /v1/insights/refresh
func (h *Handler) RefreshInsights(c echo.Context) error {
	user := middleware.GetUser(c)

	ins, err := h.insightService.Refresh(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toInsightView(ins))
}
