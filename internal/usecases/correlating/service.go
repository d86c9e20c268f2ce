package correlating

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const analysisName = "correlation"

// Correlate measures how well value at the short horizon predicts value at the long horizon.
// Only customers observed for at least long buckets take part.
func Correlate(set *domain.SeriesSet, short, long int, method domain.CorrelationMethod) (*domain.CorrelationResult, error) {
	if err := domain.ValidateHorizons(short, long); err != nil {
		return nil, err
	}
	if _, err := domain.ParseCorrelationMethod(string(method)); err != nil {
		return nil, err
	}

	result := &domain.CorrelationResult{
		Method:       method,
		ShortHorizon: short,
		LongHorizon:  long,
		Points:       []domain.PairedPoint{},
	}

	var xs, ys []float64
	for _, series := range set.Series {
		if !series.Qualifies(long) {
			result.Excluded++
			continue
		}
		point := domain.PairedPoint{
			CustomerID: series.CustomerID,
			Short:      series.ValueAt(short),
			Long:       series.ValueAt(long),
		}
		result.Points = append(result.Points, point)
		xs = append(xs, point.Short.InexactFloat64())
		ys = append(ys, point.Long.InexactFloat64())
	}
	result.Included = len(result.Points)

	if result.Included < 2 {
		return result, domain.NewInsufficientData(analysisName,
			fmt.Sprintf("%d customers observed for %d buckets, at least 2 required", result.Included, long))
	}

	coefficient, ok := coefficient(xs, ys, method)
	if !ok {
		return result, domain.NewInsufficientData(analysisName, "values do not vary across customers, coefficient is undefined")
	}
	result.Coefficient = coefficient

	return result, nil
}

// CorrelateCohorts runs Correlate inside every acquisition cohort.
func CorrelateCohorts(set *domain.SeriesSet, short, long int, method domain.CorrelationMethod) ([]domain.CohortCorrelation, error) {
	if err := domain.ValidateHorizons(short, long); err != nil {
		return nil, err
	}

	byID := make(map[string]domain.RevenueSeries, len(set.Series))
	for _, series := range set.Series {
		byID[series.CustomerID] = series
	}

	cohorts := set.Cohorts()
	out := make([]domain.CohortCorrelation, 0, len(cohorts))
	for _, cohort := range cohorts {
		subset := &domain.SeriesSet{Granularity: set.Granularity, FirstBucket: cohort.Bucket, LastBucket: set.LastBucket}
		for _, id := range cohort.CustomerIDs {
			subset.Series = append(subset.Series, byID[id])
		}

		result, err := Correlate(subset, short, long, method)
		if err != nil && !domain.IsAnalysisError(err) {
			return nil, err
		}

		entry := domain.CohortCorrelation{
			Cohort:    cohort.Bucket,
			Customers: len(cohort.CustomerIDs),
			Status:    domain.StatusOf(err),
		}
		if result != nil {
			entry.Included = result.Included
		}
		if err != nil {
			entry.Message = err.Error()
		} else {
			c := result.Coefficient
			entry.Coefficient = &c
		}
		out = append(out, entry)
	}

	return out, nil
}

// Matrix computes pairwise correlations across horizons over the customers observed for the
// largest usable horizon, and finds the earliest horizon that predicts the largest one.
func Matrix(set *domain.SeriesSet, horizons []int, method domain.CorrelationMethod, threshold float64) (*domain.CorrelationMatrix, error) {
	if _, err := domain.ParseCorrelationMethod(string(method)); err != nil {
		return nil, err
	}
	if err := domain.ValidateFinite("predictive_threshold", threshold); err != nil {
		return nil, err
	}
	horizons, err := normalizeHorizons(horizons)
	if err != nil {
		return nil, err
	}

	// Drop horizons nobody could be observed for.
	for len(horizons) >= 2 && qualifying(set, horizons[len(horizons)-1]) < 2 {
		horizons = horizons[:len(horizons)-1]
	}
	if len(horizons) < 2 {
		return nil, domain.NewInsufficientData("correlation_matrix", "fewer than 2 horizons have at least 2 observed customers")
	}

	maxHorizon := horizons[len(horizons)-1]
	columns := make([][]float64, len(horizons))
	customers := 0
	for _, series := range set.Series {
		if !series.Qualifies(maxHorizon) {
			continue
		}
		customers++
		for i, h := range horizons {
			columns[i] = append(columns[i], series.ValueAt(h).InexactFloat64())
		}
	}

	matrix := &domain.CorrelationMatrix{
		Method:    method,
		Horizons:  horizons,
		Customers: customers,
		Values:    make([][]*float64, len(horizons)),
		Threshold: threshold,
	}
	for i := range horizons {
		matrix.Values[i] = make([]*float64, len(horizons))
		for j := range horizons {
			if c, ok := coefficient(columns[i], columns[j], method); ok {
				matrix.Values[i][j] = &c
			}
		}
	}

	last := len(horizons) - 1
	for i := 0; i < last; i++ {
		if c := matrix.Values[i][last]; c != nil && *c > threshold {
			matrix.PredictiveHorizon = horizons[i]
			break
		}
	}

	return matrix, nil
}

func normalizeHorizons(horizons []int) ([]int, error) {
	seen := make(map[int]bool, len(horizons))
	out := make([]int, 0, len(horizons))
	for _, h := range horizons {
		if h < 1 {
			return nil, domain.NewInvalidParameter("horizons", fmt.Sprintf("horizon must be at least 1, got %d", h))
		}
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	sort.Ints(out)
	if len(out) < 2 {
		return nil, domain.NewInvalidParameter("horizons", "at least 2 distinct horizons are required")
	}
	return out, nil
}

func qualifying(set *domain.SeriesSet, h int) int {
	n := 0
	for _, series := range set.Series {
		if series.Qualifies(h) {
			n++
		}
	}
	return n
}

// coefficient returns false when either side has no variance.
func coefficient(xs, ys []float64, method domain.CorrelationMethod) (float64, bool) {
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return 0, false
	}
	if method == domain.MethodSpearman {
		xs, ys = ranks(xs), ranks(ys)
	}

	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) {
		return 0, false
	}
	// Float noise must not turn a perfect correlation into 0.9999999999999998.
	c = math.Round(c*1e12) / 1e12
	return math.Max(-1, math.Min(1, c)), true
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// ranks assigns 1-based ranks, ties get the average of their positions.
func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}
