package converting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

const analysisName = "conversion"

// Detect flags every customer whose revenue growth after the cutoff bucket beats the growth
// before it by more than threshold (relative to the pre-cutoff growth). A window > 0 limits
// both sides to that many buckets next to the cutoff.
func Detect(set *domain.SeriesSet, cutoff time.Time, threshold float64, window int) (*domain.ConversionResult, error) {
	if cutoff.IsZero() {
		return nil, domain.NewInvalidParameter("cutoff", "an optimisation cutoff date is required")
	}
	if err := domain.ValidateFinite("threshold", threshold); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, domain.NewInvalidParameter("threshold", fmt.Sprintf("threshold must not be negative, got %v", threshold))
	}
	if window < 0 {
		return nil, domain.NewInvalidParameter("window", fmt.Sprintf("window must not be negative, got %d", window))
	}

	cutoffBucket := set.Granularity.Truncate(cutoff)
	result := &domain.ConversionResult{
		Cutoff:       cutoff.UTC(),
		CutoffBucket: cutoffBucket,
		Threshold:    threshold,
		Window:       window,
		Customers:    make([]domain.CustomerConversion, 0, len(set.Series)),
	}

	factor := decimal.NewFromFloat(threshold)
	for _, series := range set.Series {
		conversion := classify(series, set.Granularity, cutoffBucket, factor, window)
		switch conversion.Flag {
		case domain.FlagConverted:
			result.Converted++
		case domain.FlagNotConverted:
			result.NotConverted++
		default:
			result.Unknown++
		}
		result.Customers = append(result.Customers, conversion)
	}

	decided := result.Converted + result.NotConverted
	if decided == 0 {
		return result, domain.NewInsufficientData(analysisName,
			fmt.Sprintf("no customer has revenue on both sides of %s", cutoffBucket.Format("2006-01-02")))
	}
	result.Rate = utils.RoundTo(float64(result.Converted)/float64(decided), 4)

	return result, nil
}

// classify reads the customer's revenue over every observed bucket. Buckets after the last
// transaction and before the end of the dataset count as zero revenue.
func classify(series domain.RevenueSeries, granularity domain.Granularity, cutoffBucket time.Time, factor decimal.Decimal, window int) domain.CustomerConversion {
	conversion := domain.CustomerConversion{CustomerID: series.CustomerID, Flag: domain.FlagUnknown}
	if len(series.Points) == 0 {
		return conversion
	}

	var pre, post []decimal.Decimal
	previous := decimal.Zero
	bucket := series.Cohort
	for i, revenue := range observedIncrements(series) {
		if i < len(series.Points) {
			bucket = series.Points[i].Bucket
		} else {
			bucket = granularity.Next(bucket)
		}
		growth := revenue.Sub(previous)
		previous = revenue
		if bucket.Before(cutoffBucket) {
			pre = append(pre, growth)
		} else {
			post = append(post, growth)
		}
	}

	if window > 0 {
		if len(pre) > window {
			pre = pre[len(pre)-window:]
		}
		if len(post) > window {
			post = post[:window]
		}
	}

	if len(pre) == 0 || len(post) == 0 {
		return conversion
	}

	preGrowth, postGrowth := mean(pre), mean(post)
	preValue, postValue := preGrowth.InexactFloat64(), postGrowth.InexactFloat64()
	conversion.PreGrowth = &preValue
	conversion.PostGrowth = &postValue

	// With no growth before the cutoff any positive growth after it counts.
	if postGrowth.Sub(preGrowth).GreaterThan(factor.Mul(preGrowth.Abs())) {
		conversion.Flag = domain.FlagConverted
	} else {
		conversion.Flag = domain.FlagNotConverted
	}
	return conversion
}

func observedIncrements(series domain.RevenueSeries) []decimal.Decimal {
	increments := series.Increments()
	for len(increments) < series.ObservedBuckets {
		increments = append(increments, decimal.Zero)
	}
	return increments
}

func mean(values []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

// Curve reports, per horizon, the share of paying customers that already paid by then and
// the average revenue per customer, plus how many payers only started after the
// optimisation window.
func Curve(set *domain.SeriesSet, horizons []int, optimisationWindow int) (*domain.ConversionCurve, error) {
	if optimisationWindow < 1 {
		return nil, domain.NewInvalidParameter("optimisation_window", fmt.Sprintf("optimisation window must be at least 1, got %d", optimisationWindow))
	}
	sorted := make([]int, 0, len(horizons))
	for _, h := range horizons {
		if h < 1 {
			return nil, domain.NewInvalidParameter("horizons", fmt.Sprintf("horizon must be at least 1, got %d", h))
		}
		sorted = append(sorted, h)
	}
	if len(sorted) == 0 {
		return nil, domain.NewInvalidParameter("horizons", "at least one horizon is required")
	}
	sort.Ints(sorted)

	var payers []domain.RevenueSeries
	for _, series := range set.Series {
		if series.Latest().IsPositive() {
			payers = append(payers, series)
		}
	}
	if len(payers) == 0 {
		return nil, domain.NewInsufficientData("conversion_curve", "no customer generated revenue")
	}

	curve := &domain.ConversionCurve{
		OptimisationWindow: optimisationWindow,
		Payers:             len(payers),
		Points:             make([]domain.CurvePoint, 0, len(sorted)),
	}

	for _, series := range payers {
		if series.FirstRevenueIndex() >= optimisationWindow {
			curve.LateConverters++
		}
	}
	curve.LatePercent = utils.Percent(curve.LateConverters, curve.Payers)

	previous := 0
	for _, h := range sorted {
		if h == previous {
			continue
		}
		previous = h

		point := domain.CurvePoint{Horizon: h, ARPU: decimal.Zero}
		converted := 0
		total := decimal.Zero
		for _, series := range payers {
			if !series.Qualifies(h) {
				continue
			}
			point.Customers++
			value := series.ValueAt(h)
			if value.IsPositive() {
				converted++
			}
			total = total.Add(value)
		}
		if point.Customers > 0 {
			point.ConvertedPercent = utils.Percent(converted, point.Customers)
			point.ARPU = total.Div(decimal.NewFromInt(int64(point.Customers))).Round(2)
		}
		curve.Points = append(curve.Points, point)
	}

	return curve, nil
}
