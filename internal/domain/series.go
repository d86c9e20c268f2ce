package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type RevenuePoint struct {
	Bucket     time.Time       `json:"bucket"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// RevenueSeries holds the cumulative revenue of one customer, one point per bucket from
// the acquisition bucket up to the bucket of the last transaction.
type RevenueSeries struct {
	CustomerID      string         `json:"customer_id"`
	Cohort          time.Time      `json:"cohort"`
	Points          []RevenuePoint `json:"points"`
	ObservedBuckets int            `json:"observed_buckets"`
}

// ValueAt returns the cumulative revenue after the first h buckets. When the series ended
// earlier the latest value is returned, since no revenue happened afterwards.
func (s RevenueSeries) ValueAt(h int) decimal.Decimal {
	if len(s.Points) == 0 || h < 1 {
		return decimal.Zero
	}
	if h > len(s.Points) {
		return s.Latest()
	}
	return s.Points[h-1].Cumulative
}

func (s RevenueSeries) Latest() decimal.Decimal {
	if len(s.Points) == 0 {
		return decimal.Zero
	}
	return s.Points[len(s.Points)-1].Cumulative
}

// Qualifies reports whether h buckets of history could be observed for the customer.
func (s RevenueSeries) Qualifies(h int) bool {
	return s.ObservedBuckets >= h
}

// Increments returns the revenue of each bucket of the series.
func (s RevenueSeries) Increments() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.Points))
	previous := decimal.Zero
	for i, p := range s.Points {
		out[i] = p.Cumulative.Sub(previous)
		previous = p.Cumulative
	}
	return out
}

// FirstRevenueIndex is the index of the first bucket with revenue, -1 when there is none.
func (s RevenueSeries) FirstRevenueIndex() int {
	for i, p := range s.Points {
		if p.Cumulative.IsPositive() {
			return i
		}
	}
	return -1
}

type SeriesSet struct {
	Granularity Granularity     `json:"granularity"`
	FirstBucket time.Time       `json:"first_bucket"`
	LastBucket  time.Time       `json:"last_bucket"`
	Dropped     int             `json:"dropped_rows"`
	Series      []RevenueSeries `json:"series"`
}

type Cohort struct {
	Bucket      time.Time `json:"bucket"`
	CustomerIDs []string  `json:"customer_ids"`
}

// Cohorts groups customers by acquisition bucket, oldest cohort first.
func (s *SeriesSet) Cohorts() []Cohort {
	byBucket := make(map[int64]*Cohort)
	for _, series := range s.Series {
		key := series.Cohort.Unix()
		cohort, ok := byBucket[key]
		if !ok {
			cohort = &Cohort{Bucket: series.Cohort}
			byBucket[key] = cohort
		}
		cohort.CustomerIDs = append(cohort.CustomerIDs, series.CustomerID)
	}

	cohorts := make([]Cohort, 0, len(byBucket))
	for _, cohort := range byBucket {
		sort.Strings(cohort.CustomerIDs)
		cohorts = append(cohorts, *cohort)
	}
	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].Bucket.Before(cohorts[j].Bucket)
	})
	return cohorts
}
