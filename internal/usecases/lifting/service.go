package lifting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

const baselineFactor = 0.10

type spendBracket struct {
	Label string
	Min   int64
	Max   int64
}

// Brackets are monthly ad spend ranges, in the order they are offered to clients.
var Brackets = []spendBracket{
	{Label: "Less than $100k", Min: 1, Max: 100_000},
	{Label: "$100k - $300k", Min: 100_000, Max: 300_000},
	{Label: "$300k - $600k", Min: 300_000, Max: 600_000},
	{Label: "$600k - $1M", Min: 600_000, Max: 1_000_000},
	{Label: "$1M - $1.5M", Min: 1_000_000, Max: 1_500_000},
	{Label: "$1.5M - $3M", Min: 1_500_000, Max: 3_000_000},
	{Label: "$3M - $10M", Min: 3_000_000, Max: 10_000_000},
	{Label: "More than $10M", Min: 10_000_000, Max: 100_000_000},
}

var RoasPeriods = []string{"D30", "D60", "D90", "D180"}

// correlationBands maps the longest observed horizon, in days, to the extra factor granted
// for each correlation band: below 0.4, 0.6, 0.7, 0.8 and above.
var correlationBands = []struct {
	MaxDays int
	Factors [5]float64
}{
	{MaxDays: 60, Factors: [5]float64{0.10, 0.08, 0.03, 0.01, 0}},
	{MaxDays: 90, Factors: [5]float64{0.12, 0.10, 0.04, 0.01, 0}},
	{MaxDays: 0, Factors: [5]float64{0.14, 0.12, 0.04, 0.01, 0}},
}

// Estimate projects the return uplift of optimising on early revenue for a spend bracket.
// correlation is the short vs long horizon coefficient of the current dataset.
func Estimate(req domain.LiftRequest, correlation float64, longestHorizonDays int) (*domain.LiftEstimate, error) {
	bracket, ok := findBracket(req.AdSpend)
	if !ok {
		return nil, domain.NewInvalidParameter("ad_spend", fmt.Sprintf("unknown ad spend bracket %q", req.AdSpend))
	}
	period, ok := findPeriod(req.RoasPeriod)
	if !ok {
		return nil, domain.NewInvalidParameter("roas_period", fmt.Sprintf("roas period must be one of %s", strings.Join(RoasPeriods, ", ")))
	}
	if err := domain.ValidateFinite("regular_roas", req.RegularRoas); err != nil {
		return nil, err
	}
	if req.RegularRoas <= 0 {
		return nil, domain.NewInvalidParameter("regular_roas", "regular roas must be positive")
	}

	corrFactor := correlationFactor(longestHorizonDays, correlation)
	estimate := &domain.LiftEstimate{
		AdSpend:           bracket.Label,
		RoasPeriod:        period,
		RegularRoas:       req.RegularRoas,
		Correlation:       correlation,
		LongestHorizon:    longestHorizonDays,
		ImprovementFactor: baselineFactor + corrFactor,
	}

	estimate.Min = scenario(bracket.Min, req.RegularRoas, corrFactor)
	estimate.Max = scenario(bracket.Max, req.RegularRoas, corrFactor)

	return estimate, nil
}

func scenario(monthlySpend int64, regularRoas, corrFactor float64) domain.LiftScenario {
	factor := decimal.NewFromFloat(baselineFactor).
		Add(decimal.NewFromFloat(spendFactor(monthlySpend))).
		Add(decimal.NewFromFloat(corrFactor))

	spend := decimal.NewFromInt(monthlySpend)
	roas := decimal.NewFromFloat(regularRoas)
	improvedRoas := roas.Add(roas.Mul(factor))

	current := spend.Mul(roas)
	improved := spend.Mul(improvedRoas)
	uplift := improved.Sub(current)

	return domain.LiftScenario{
		MonthlySpend:          spend,
		CurrentMonthlyReturn:  current.Round(2),
		ImprovedMonthlyReturn: improved.Round(2),
		MonthlyUplift:         uplift.Round(2),
		YearlyUplift:          uplift.Mul(decimal.NewFromInt(12)).Round(2),
		UpliftPercent:         uplift.Div(current).Mul(decimal.NewFromInt(100)).Round(2),
	}
}

func spendFactor(monthlySpend int64) float64 {
	switch {
	case monthlySpend > 200_000:
		return 0.03
	case monthlySpend > 100_000:
		return 0.05
	default:
		return 0
	}
}

func correlationFactor(longestHorizonDays int, correlation float64) float64 {
	band := correlationBands[len(correlationBands)-1]
	for _, b := range correlationBands[:len(correlationBands)-1] {
		if longestHorizonDays <= b.MaxDays {
			band = b
			break
		}
	}

	switch {
	case correlation < 0.4:
		return band.Factors[0]
	case correlation < 0.6:
		return band.Factors[1]
	case correlation < 0.7:
		return band.Factors[2]
	case correlation < 0.8:
		return band.Factors[3]
	default:
		return band.Factors[4]
	}
}

func findBracket(label string) (spendBracket, bool) {
	for _, b := range Brackets {
		if strings.EqualFold(b.Label, strings.TrimSpace(label)) {
			return b, true
		}
	}
	return spendBracket{}, false
}

func findPeriod(period string) (string, bool) {
	for _, p := range RoasPeriods {
		if strings.EqualFold(p, strings.TrimSpace(period)) {
			return p, true
		}
	}
	return "", false
}
