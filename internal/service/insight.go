package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

type InsightService struct {
	store repository.InsightRepository
	ai    Completer
}

func NewInsightService(store repository.InsightRepository, ai Completer) *InsightService {
	return &InsightService{store: store, ai: ai}
}

type insightPayload struct {
	SalaryRanges      []domain.SalaryRange `json:"salaryRanges"`
	GrowthRate        float64              `json:"growthRate"`
	DemandLevel       domain.DemandLevel   `json:"demandLevel"`
	TopSkills         []string             `json:"topSkills"`
	MarketOutlook     domain.MarketOutlook `json:"marketOutlook"`
	KeyTrends         []string             `json:"keyTrends"`
	RecommendedSkills []string             `json:"recommendedSkills"`
}

// fallbackInsights keeps dashboards usable when generation is down, mirroring
// the degraded-content-over-error policy of the interview flow.
func fallbackInsights() insightPayload {
	return insightPayload{
		SalaryRanges: []domain.SalaryRange{
			{Role: "Software Engineer", Min: decimal.NewFromInt(40000), Max: decimal.NewFromInt(90000), Median: decimal.NewFromInt(65000), Location: "Global"},
			{Role: "Data Analyst", Min: decimal.NewFromInt(35000), Max: decimal.NewFromInt(80000), Median: decimal.NewFromInt(60000), Location: "Global"},
		},
		GrowthRate:        0,
		DemandLevel:       domain.DemandMedium,
		TopSkills:         []string{"Problem Solving", "Communication"},
		MarketOutlook:     domain.OutlookNeutral,
		KeyTrends:         []string{"Insights unavailable due to quota limits"},
		RecommendedSkills: []string{"Learn continuously"},
	}
}

// Generate asks the model for a market snapshot of the industry, substituting
// the fixed fallback payload when generation fails.
func (s *InsightService) Generate(ctx context.Context, industry string) insightPayload {
	raw, err := s.ai.Complete(ctx, industryInsightsPrompt(industry))
	if err != nil {
		slog.Error("insight generation failed", "error", err, "industry", industry)
		return fallbackInsights()
	}
	var payload insightPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		slog.Error("insight response malformed", "error", err, "industry", industry)
		return fallbackInsights()
	}
	return payload
}

// Refresh regenerates and stores the insight row for the user's industry.
func (s *InsightService) Refresh(ctx context.Context, user *domain.User) (*domain.IndustryInsight, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsOnboarded() {
		return nil, domain.ErrNotOnboarded
	}

	payload := s.Generate(ctx, user.Industry)
	ins, err := s.store.UpsertInsight(ctx, repository.UpsertInsightInput{
		Industry:          user.Industry,
		SalaryRanges:      payload.SalaryRanges,
		GrowthRate:        payload.GrowthRate,
		DemandLevel:       payload.DemandLevel,
		TopSkills:         payload.TopSkills,
		MarketOutlook:     payload.MarketOutlook,
		KeyTrends:         payload.KeyTrends,
		RecommendedSkills: payload.RecommendedSkills,
		NextUpdate:        time.Now().Add(config.InsightRefreshPeriod),
	})
	if err != nil {
		return nil, fmt.Errorf("store insight: %w", err)
	}
	return ins, nil
}

// GetForUser returns the stored insight for the user's industry, if any.
func (s *InsightService) GetForUser(ctx context.Context, user *domain.User) (*domain.IndustryInsight, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsOnboarded() {
		return nil, domain.ErrNotOnboarded
	}
	return s.store.GetInsightByIndustry(ctx, user.Industry)
}
