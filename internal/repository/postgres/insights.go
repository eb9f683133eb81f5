package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, top_skills,
	market_outlook, key_trends, recommended_skills, next_update, created_at, updated_at`

func scanInsight(row pgx.Row) (*domain.IndustryInsight, error) {
	var ins domain.IndustryInsight
	var salaryRanges []byte
	err := row.Scan(&ins.ID, &ins.Industry, &salaryRanges, &ins.GrowthRate,
		&ins.DemandLevel, &ins.TopSkills, &ins.MarketOutlook, &ins.KeyTrends,
		&ins.RecommendedSkills, &ins.NextUpdate, &ins.CreatedAt, &ins.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(salaryRanges, &ins.SalaryRanges); err != nil {
		return nil, fmt.Errorf("unmarshal salary ranges: %w", err)
	}
	return &ins, nil
}

func (s *Store) GetInsightByIndustry(ctx context.Context, industry string) (*domain.IndustryInsight, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1`, industry)
	ins, err := scanInsight(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInsightNotFound
		}
		return nil, fmt.Errorf("get insight: %w", err)
	}
	return ins, nil
}

func (s *Store) UpsertInsight(ctx context.Context, input repository.UpsertInsightInput) (*domain.IndustryInsight, error) {
	if input.SalaryRanges == nil {
		input.SalaryRanges = []domain.SalaryRange{}
	}
	salaryRanges, err := json.Marshal(input.SalaryRanges)
	if err != nil {
		return nil, fmt.Errorf("marshal salary ranges: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO industry_insights
		 (industry, salary_ranges, growth_rate, demand_level, top_skills,
		  market_outlook, key_trends, recommended_skills, next_update)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (industry) DO UPDATE SET
		   salary_ranges = EXCLUDED.salary_ranges,
		   growth_rate = EXCLUDED.growth_rate,
		   demand_level = EXCLUDED.demand_level,
		   top_skills = EXCLUDED.top_skills,
		   market_outlook = EXCLUDED.market_outlook,
		   key_trends = EXCLUDED.key_trends,
		   recommended_skills = EXCLUDED.recommended_skills,
		   next_update = EXCLUDED.next_update,
		   updated_at = now()
		 RETURNING `+insightColumns,
		input.Industry, salaryRanges, input.GrowthRate, input.DemandLevel,
		orEmpty(input.TopSkills), input.MarketOutlook, orEmpty(input.KeyTrends),
		orEmpty(input.RecommendedSkills), input.NextUpdate)
	ins, err := scanInsight(row)
	if err != nil {
		return nil, fmt.Errorf("upsert insight: %w", err)
	}
	return ins, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
