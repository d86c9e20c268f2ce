package converting

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

func month(m time.Month) time.Time {
	return time.Date(2023, m, 1, 0, 0, 0, 0, time.UTC)
}

func series(id string, cohort time.Time, observed int, revenue ...int64) domain.RevenueSeries {
	s := domain.RevenueSeries{CustomerID: id, Cohort: cohort, ObservedBuckets: observed}
	cumulative := decimal.Zero
	bucket := cohort
	for _, r := range revenue {
		cumulative = cumulative.Add(decimal.NewFromInt(r))
		s.Points = append(s.Points, domain.RevenuePoint{Bucket: bucket, Cumulative: cumulative})
		bucket = domain.GranularityMonth.Next(bucket)
	}
	return s
}

func monthly(series ...domain.RevenueSeries) *domain.SeriesSet {
	return &domain.SeriesSet{Granularity: domain.GranularityMonth, Series: series}
}

func TestDetect_EqualGrowthIsNotConverted(t *testing.T) {
	// A: Jan 10, Feb 20 -> growth 10 before the cutoff and 10 after it.
	set := monthly(series("A", month(time.January), 2, 10, 20), series("B", month(time.February), 1, 5))

	result, err := Detect(set, month(time.February), 0.5, 0)
	require.NoError(t, err)
	require.Len(t, result.Customers, 2)

	a := result.Customers[0]
	assert.Equal(t, domain.FlagNotConverted, a.Flag)
	require.NotNil(t, a.PreGrowth)
	assert.Equal(t, 10.0, *a.PreGrowth)
	assert.Equal(t, 10.0, *a.PostGrowth)

	assert.Equal(t, domain.FlagUnknown, result.Customers[1].Flag)
	assert.Nil(t, result.Customers[1].PreGrowth)

	assert.Equal(t, 0, result.Converted)
	assert.Equal(t, 1, result.NotConverted)
	assert.Equal(t, 1, result.Unknown)
	assert.Equal(t, 0.0, result.Rate)
	assert.Equal(t, month(time.February), result.CutoffBucket)
}

func TestDetect_Flags(t *testing.T) {
	tests := []struct {
		name      string
		series    domain.RevenueSeries
		threshold float64
		window    int
		cutoff    time.Time
		want      domain.ConversionFlag
	}{
		{name: "growth accelerates", series: series("x", month(time.January), 3, 10, 30), threshold: 0.5, want: domain.FlagConverted},
		{name: "growth just below threshold", series: series("x", month(time.January), 3, 10, 25), threshold: 0.5, want: domain.FlagNotConverted},
		{name: "no growth before, growth after", series: series("x", month(time.January), 3, 0, 5), threshold: 0.5, want: domain.FlagConverted},
		{name: "no growth on either side", series: series("x", month(time.January), 3, 0, 0), threshold: 0.5, want: domain.FlagNotConverted},
		{name: "only after cutoff", series: series("x", month(time.February), 2, 7, 9), threshold: 0.5, want: domain.FlagUnknown},
		{name: "dataset ends before cutoff", series: series("x", month(time.January), 1, 7), threshold: 0.5, want: domain.FlagUnknown},
		{name: "stopped paying before cutoff", series: series("x", month(time.January), 3, 7), threshold: 0.5, want: domain.FlagNotConverted},
		{name: "paying again after a gap", series: series("x", month(time.January), 3, 7, 0, 20), threshold: 0.5, cutoff: month(time.March), want: domain.FlagConverted},
		{name: "whole series around march", series: series("x", month(time.January), 4, 50, 0, 0, 1), threshold: 2, cutoff: month(time.March), want: domain.FlagConverted},
		{name: "window keeps buckets next to the cutoff", series: series("x", month(time.January), 4, 50, 0, 0, 1), threshold: 2, window: 1, cutoff: month(time.March), want: domain.FlagNotConverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutoff := month(time.February)
			if !tt.cutoff.IsZero() {
				cutoff = tt.cutoff
			}
			result, _ := Detect(monthly(tt.series), cutoff, tt.threshold, tt.window)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Customers[0].Flag)
		})
	}
}

func TestDetect_Rate(t *testing.T) {
	set := monthly(
		series("a", month(time.January), 2, 10, 30),
		series("b", month(time.January), 2, 10, 10),
		series("c", month(time.January), 2, 0, 4),
		series("d", month(time.February), 1, 4),
	)

	result, err := Detect(set, time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC), 0.5, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.NotConverted)
	assert.Equal(t, 1, result.Unknown)
	assert.Equal(t, 0.6667, result.Rate)
}

func TestDetect_ChurnedCustomersCountTowardsTheRate(t *testing.T) {
	// The dataset runs Jan to Jun. A stops paying in Feb, B comes back in Jun.
	set := monthly(
		series("A", month(time.January), 6, 100, 100),
		series("B", month(time.January), 6, 10, 0, 0, 0, 0, 100),
	)

	result, err := Detect(set, month(time.March), 0.5, 0)
	require.NoError(t, err)

	require.Len(t, result.Customers, 2)
	a := result.Customers[0]
	assert.Equal(t, domain.FlagNotConverted, a.Flag)
	assert.Equal(t, 50.0, *a.PreGrowth)
	assert.Equal(t, -25.0, *a.PostGrowth)
	assert.Equal(t, domain.FlagConverted, result.Customers[1].Flag)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.NotConverted)
	assert.Equal(t, 0, result.Unknown)
	assert.Equal(t, 0.5, result.Rate)
}

func TestDetect_Errors(t *testing.T) {
	set := monthly(series("A", month(time.February), 1, 10))

	_, err := Detect(set, time.Time{}, 0.5, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Detect(set, month(time.February), -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Detect(set, month(time.February), 0.5, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	for _, threshold := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			_, err = Detect(set, month(time.February), threshold, 0)
		})
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	}

	result, err := Detect(set, month(time.February), 0.5, 0)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Unknown)
}

func TestCurve(t *testing.T) {
	set := monthly(
		series("a", month(time.January), 4, 10, 0, 0, 5),
		series("b", month(time.January), 4, 0, 0, 0, 20),
		series("c", month(time.January), 2, 0, 6),
		series("d", month(time.January), 4, 0),
	)

	curve, err := Curve(set, []int{4, 1, 2}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, curve.Payers)
	assert.Equal(t, 1, curve.LateConverters)
	assert.Equal(t, 33.33, curve.LatePercent)

	require.Len(t, curve.Points, 3)
	assert.Equal(t, 1, curve.Points[0].Horizon)
	assert.Equal(t, 3, curve.Points[0].Customers)
	assert.Equal(t, 33.33, curve.Points[0].ConvertedPercent)
	assert.True(t, curve.Points[0].ARPU.Equal(decimal.RequireFromString("3.33")))

	assert.Equal(t, 2, curve.Points[1].Horizon)
	assert.Equal(t, 66.67, curve.Points[1].ConvertedPercent)

	assert.Equal(t, 4, curve.Points[2].Horizon)
	assert.Equal(t, 2, curve.Points[2].Customers)
	assert.Equal(t, 100.0, curve.Points[2].ConvertedPercent)
	assert.True(t, curve.Points[2].ARPU.Equal(decimal.RequireFromString("17.5")))
}

func TestCurve_Errors(t *testing.T) {
	_, err := Curve(monthly(series("a", month(time.January), 1, 0)), []int{1}, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)

	_, err = Curve(monthly(), nil, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Curve(monthly(), []int{1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
