package analyzing

import (
	"sync"

	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/internal/usecases/aggregating"
)

// dataset is immutable once published. Aggregations are computed once per granularity.
type dataset struct {
	summary      domain.DatasetSummary
	transactions []domain.Transaction

	mu     sync.Mutex
	series map[domain.Granularity]*domain.SeriesSet
}

func newDataset(summary domain.DatasetSummary, transactions []domain.Transaction) *dataset {
	return &dataset{
		summary:      summary,
		transactions: transactions,
		series:       make(map[domain.Granularity]*domain.SeriesSet),
	}
}

func (d *dataset) seriesFor(granularity domain.Granularity) (*domain.SeriesSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if set, ok := d.series[granularity]; ok {
		return set, nil
	}

	set, err := aggregating.Aggregate(d.transactions, granularity)
	if err != nil {
		return nil, err
	}
	d.series[granularity] = set
	return set, nil
}
