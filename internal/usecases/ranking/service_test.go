package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

var jan = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func series(id string, revenue ...int64) domain.RevenueSeries {
	s := domain.RevenueSeries{CustomerID: id, Cohort: jan, ObservedBuckets: len(revenue)}
	cumulative := decimal.Zero
	bucket := jan
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

func TestRank_SecondCustomerImproves(t *testing.T) {
	// short values [10, 5], long values [30, 40]
	set := monthly(series("a", 10, 20), series("b", 5, 35))

	result, err := Rank(set, 1, 2, 1)
	require.NoError(t, err)
	require.Len(t, result.Ranks, 2)

	a, b := result.Ranks[0], result.Ranks[1]
	assert.Equal(t, 1, a.ShortRank)
	assert.Equal(t, 2, a.LongRank)
	assert.Equal(t, 1, a.Delta)

	assert.Equal(t, 2, b.ShortRank)
	assert.Equal(t, 1, b.LongRank)
	assert.Equal(t, -1, b.Delta)
	assert.True(t, b.LongValue.Equal(decimal.NewFromInt(40)))

	assert.Equal(t, 1, result.Summary.Improved)
	assert.Equal(t, 1, result.Summary.Worsened)
	assert.Equal(t, 0, result.Summary.Unchanged)
	assert.Equal(t, 0.5, result.Summary.ImprovedFraction)
	assert.Equal(t, 0.0, result.Summary.TopDecileRetention)
}

func TestRank_TiesBrokenByCustomerID(t *testing.T) {
	set := monthly(series("c", 5, 0), series("a", 5, 0), series("b", 5, 0))

	result, err := Rank(set, 1, 2, 1)
	require.NoError(t, err)

	got := map[string]int{}
	for _, r := range result.Ranks {
		got[r.CustomerID] = r.ShortRank
		assert.Equal(t, r.ShortRank, r.LongRank)
		assert.Equal(t, 0, r.Delta)
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, got)
	assert.Equal(t, 3, result.Summary.Unchanged)
	assert.Equal(t, 1.0, result.Summary.TopDecileRetention)
}

func TestRank_Threshold(t *testing.T) {
	set := monthly(
		series("a", 40, 0),
		series("b", 30, 20),
		series("c", 20, 40),
		series("d", 10, 0),
	)

	// long values: a 40, b 50, c 60, d 10 -> c 1, b 2, a 3, d 4
	result, err := Rank(set, 1, 2, 2)
	require.NoError(t, err)

	deltas := map[string]int{}
	for _, r := range result.Ranks {
		deltas[r.CustomerID] = r.Delta
	}
	assert.Equal(t, map[string]int{"a": 2, "b": 0, "c": -2, "d": 0}, deltas)
	assert.Equal(t, 1, result.Summary.Improved)
	assert.Equal(t, 1, result.Summary.Worsened)
	assert.Equal(t, 2, result.Summary.Unchanged)
}

func TestRank_RanksArePermutations(t *testing.T) {
	var all []domain.RevenueSeries
	for i := 0; i < 25; i++ {
		all = append(all, series(fmt.Sprintf("c%02d", i), int64(i%7), int64((i*13)%11)))
	}

	result, err := Rank(monthly(all...), 1, 2, 1)
	require.NoError(t, err)

	shortSeen := make(map[int]bool)
	longSeen := make(map[int]bool)
	for _, r := range result.Ranks {
		shortSeen[r.ShortRank] = true
		longSeen[r.LongRank] = true
	}
	assert.Len(t, shortSeen, 25)
	assert.Len(t, longSeen, 25)
	assert.Equal(t, 25, result.Summary.Improved+result.Summary.Worsened+result.Summary.Unchanged)

	again, err := Rank(monthly(all...), 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestRank_Errors(t *testing.T) {
	_, err := Rank(monthly(series("a", 1, 2)), 2, 2, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Rank(monthly(series("a", 1, 2)), 1, 2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Rank(monthly(), 1, 2, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}
