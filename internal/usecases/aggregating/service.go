package aggregating

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

type customerBuckets struct {
	firstTx     time.Time
	lastTx      time.Time
	activatedAt time.Time
	revenue     map[int64]decimal.Decimal
}

// Aggregate turns raw transactions into one cumulative revenue series per customer.
// Invalid rows are dropped and counted.
func Aggregate(transactions []domain.Transaction, granularity domain.Granularity) (*domain.SeriesSet, error) {
	if _, err := domain.ParseGranularity(string(granularity)); err != nil {
		return nil, err
	}

	set := &domain.SeriesSet{Granularity: granularity, Series: []domain.RevenueSeries{}}
	customers := make(map[string]*customerBuckets)

	for _, tx := range transactions {
		if !tx.Valid() {
			set.Dropped++
			continue
		}

		bucket := granularity.Truncate(tx.Timestamp)
		c, ok := customers[tx.CustomerID]
		if !ok {
			c = &customerBuckets{firstTx: bucket, lastTx: bucket, revenue: make(map[int64]decimal.Decimal)}
			customers[tx.CustomerID] = c
		}

		if bucket.Before(c.firstTx) {
			c.firstTx = bucket
		}
		if bucket.After(c.lastTx) {
			c.lastTx = bucket
		}
		if !tx.ActivatedAt.IsZero() {
			activation := granularity.Truncate(tx.ActivatedAt)
			if c.activatedAt.IsZero() || activation.Before(c.activatedAt) {
				c.activatedAt = activation
			}
		}

		key := bucket.Unix()
		c.revenue[key] = c.revenue[key].Add(tx.Amount)

		if set.LastBucket.IsZero() || bucket.After(set.LastBucket) {
			set.LastBucket = bucket
		}
	}

	if len(customers) == 0 {
		return set, nil
	}

	ids := make([]string, 0, len(customers))
	for id := range customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	set.Series = make([]domain.RevenueSeries, 0, len(ids))
	for _, id := range ids {
		series := buildSeries(id, customers[id], granularity, set.LastBucket)
		if set.FirstBucket.IsZero() || series.Cohort.Before(set.FirstBucket) {
			set.FirstBucket = series.Cohort
		}
		set.Series = append(set.Series, series)
	}

	return set, nil
}

func buildSeries(id string, c *customerBuckets, granularity domain.Granularity, datasetEnd time.Time) domain.RevenueSeries {
	start := c.firstTx
	if !c.activatedAt.IsZero() && c.activatedAt.Before(start) {
		start = c.activatedAt
	}

	series := domain.RevenueSeries{
		CustomerID:      id,
		Cohort:          start,
		Points:          make([]domain.RevenuePoint, 0, granularity.Span(start, c.lastTx)),
		ObservedBuckets: granularity.Span(start, datasetEnd),
	}

	cumulative := decimal.Zero
	for bucket := start; !bucket.After(c.lastTx); bucket = granularity.Next(bucket) {
		cumulative = cumulative.Add(c.revenue[bucket.Unix()])
		series.Points = append(series.Points, domain.RevenuePoint{Bucket: bucket, Cumulative: cumulative})
	}

	return series
}
