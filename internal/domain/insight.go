package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"
)

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

type SalaryRange struct {
	Role     string          `json:"role"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Median   decimal.Decimal `json:"median"`
	Location string          `json:"location"`
}

// IndustryInsight is one generated market snapshot, keyed by industry.
type IndustryInsight struct {
	ID                uuid.UUID
	Industry          string
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       DemandLevel
	TopSkills         []string
	MarketOutlook     MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
	NextUpdate        time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
