package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PairedPoint struct {
	CustomerID string          `json:"customer_id"`
	Short      decimal.Decimal `json:"short"`
	Long       decimal.Decimal `json:"long"`
}

type CorrelationResult struct {
	Method       CorrelationMethod `json:"method"`
	ShortHorizon int               `json:"short_horizon"`
	LongHorizon  int               `json:"long_horizon"`
	Coefficient  float64           `json:"coefficient"`
	Included     int               `json:"included"`
	Excluded     int               `json:"excluded"`
	Points       []PairedPoint     `json:"points"`
}

type CohortCorrelation struct {
	Cohort      time.Time `json:"cohort"`
	Customers   int       `json:"customers"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Coefficient *float64  `json:"coefficient,omitempty"`
	Included    int       `json:"included"`
}

// CorrelationMatrix holds pairwise coefficients, nil where undefined.
type CorrelationMatrix struct {
	Method            CorrelationMethod `json:"method"`
	Horizons          []int             `json:"horizons"`
	Customers         int               `json:"customers"`
	Values            [][]*float64      `json:"values"`
	PredictiveHorizon int               `json:"predictive_horizon,omitempty"`
	Threshold         float64           `json:"threshold"`
}

type ConversionFlag string

const (
	FlagConverted    ConversionFlag = "converted"
	FlagNotConverted ConversionFlag = "not_converted"
	FlagUnknown      ConversionFlag = "unknown"
)

type CustomerConversion struct {
	CustomerID string         `json:"customer_id"`
	Flag       ConversionFlag `json:"flag"`
	PreGrowth  *float64       `json:"pre_growth,omitempty"`
	PostGrowth *float64       `json:"post_growth,omitempty"`
}

type ConversionResult struct {
	Cutoff       time.Time            `json:"cutoff"`
	CutoffBucket time.Time            `json:"cutoff_bucket"`
	Threshold    float64              `json:"threshold"`
	Window       int                  `json:"window"`
	Converted    int                  `json:"converted"`
	NotConverted int                  `json:"not_converted"`
	Unknown      int                  `json:"unknown"`
	Rate         float64              `json:"rate"`
	Customers    []CustomerConversion `json:"customers"`
}

type CurvePoint struct {
	Horizon          int             `json:"horizon"`
	Customers        int             `json:"customers"`
	ConvertedPercent float64         `json:"converted_percent"`
	ARPU             decimal.Decimal `json:"arpu"`
}

type ConversionCurve struct {
	OptimisationWindow int          `json:"optimisation_window"`
	Payers             int          `json:"payers"`
	LateConverters     int          `json:"late_converters"`
	LatePercent        float64      `json:"late_percent"`
	Points             []CurvePoint `json:"points"`
}

type ValueRank struct {
	CustomerID string          `json:"customer_id"`
	ShortValue decimal.Decimal `json:"short_value"`
	LongValue  decimal.Decimal `json:"long_value"`
	ShortRank  int             `json:"short_rank"`
	LongRank   int             `json:"long_rank"`
	Delta      int             `json:"delta"`
}

type RankingSummary struct {
	Customers          int     `json:"customers"`
	Improved           int     `json:"improved"`
	Worsened           int     `json:"worsened"`
	Unchanged          int     `json:"unchanged"`
	ImprovedFraction   float64 `json:"improved_fraction"`
	WorsenedFraction   float64 `json:"worsened_fraction"`
	UnchangedFraction  float64 `json:"unchanged_fraction"`
	TopDecileRetention float64 `json:"top_decile_retention"`
}

type RankingResult struct {
	ShortHorizon int            `json:"short_horizon"`
	LongHorizon  int            `json:"long_horizon"`
	Threshold    int            `json:"threshold"`
	Ranks        []ValueRank    `json:"ranks"`
	Summary      RankingSummary `json:"summary"`
}

type LiftRequest struct {
	AdSpend     string  `json:"ad_spend"`
	RoasPeriod  string  `json:"roas_period"`
	RegularRoas float64 `json:"regular_roas"`
}

type LiftScenario struct {
	MonthlySpend          decimal.Decimal `json:"monthly_spend"`
	CurrentMonthlyReturn  decimal.Decimal `json:"current_monthly_return"`
	ImprovedMonthlyReturn decimal.Decimal `json:"improved_monthly_return"`
	MonthlyUplift         decimal.Decimal `json:"monthly_uplift"`
	YearlyUplift          decimal.Decimal `json:"yearly_uplift"`
	UpliftPercent         decimal.Decimal `json:"uplift_percent"`
}

type LiftEstimate struct {
	AdSpend           string       `json:"ad_spend"`
	RoasPeriod        string       `json:"roas_period"`
	RegularRoas       float64      `json:"regular_roas"`
	Correlation       float64      `json:"correlation"`
	LongestHorizon    int          `json:"longest_horizon_days"`
	ImprovementFactor float64      `json:"improvement_factor"`
	Min               LiftScenario `json:"min"`
	Max               LiftScenario `json:"max"`
}
