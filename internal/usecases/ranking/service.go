package ranking

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/utils"
)

const analysisName = "ranking"

// Rank orders customers by value at the short and at the long horizon and reports how each
// customer moved. A negative delta means the customer climbed in the long-term ordering.
func Rank(set *domain.SeriesSet, short, long, threshold int) (*domain.RankingResult, error) {
	if err := domain.ValidateHorizons(short, long); err != nil {
		return nil, err
	}
	if threshold < 1 {
		return nil, domain.NewInvalidParameter("rank_threshold", fmt.Sprintf("rank threshold must be at least 1, got %d", threshold))
	}
	if len(set.Series) == 0 {
		return nil, domain.NewInsufficientData(analysisName, "no customers to rank")
	}

	ranks := make([]domain.ValueRank, len(set.Series))
	for i, series := range set.Series {
		ranks[i] = domain.ValueRank{
			CustomerID: series.CustomerID,
			ShortValue: series.ValueAt(short),
			LongValue:  series.ValueAt(long),
		}
	}

	shortOrder := updatePositions(ranks, func(r *domain.ValueRank) decimal.Decimal { return r.ShortValue }, func(r *domain.ValueRank, p int) { r.ShortRank = p })
	longOrder := updatePositions(ranks, func(r *domain.ValueRank) decimal.Decimal { return r.LongValue }, func(r *domain.ValueRank, p int) { r.LongRank = p })

	result := &domain.RankingResult{
		ShortHorizon: short,
		LongHorizon:  long,
		Threshold:    threshold,
		Ranks:        ranks,
	}

	summary := &result.Summary
	summary.Customers = len(ranks)
	for i := range ranks {
		ranks[i].Delta = ranks[i].LongRank - ranks[i].ShortRank
		switch {
		case ranks[i].Delta <= -threshold:
			summary.Improved++
		case ranks[i].Delta >= threshold:
			summary.Worsened++
		default:
			summary.Unchanged++
		}
	}
	summary.ImprovedFraction = fraction(summary.Improved, summary.Customers)
	summary.WorsenedFraction = fraction(summary.Worsened, summary.Customers)
	summary.UnchangedFraction = fraction(summary.Unchanged, summary.Customers)
	summary.TopDecileRetention = topDecileRetention(shortOrder, longOrder)

	return result, nil
}

// updatePositions sorts by value descending, ties by customer id, and writes 1-based positions.
// It returns the customer indexes in ranking order.
func updatePositions(ranks []domain.ValueRank, value func(*domain.ValueRank) decimal.Decimal, set func(*domain.ValueRank, int)) []int {
	order := make([]int, len(ranks))
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := &ranks[order[i]], &ranks[order[j]]
		if cmp := value(a).Cmp(value(b)); cmp != 0 {
			return cmp > 0
		}
		return a.CustomerID < b.CustomerID
	})

	for position, idx := range order {
		set(&ranks[idx], position+1)
	}
	return order
}

// topDecileRetention is the share of the short-term top 10% still in the long-term top 10%.
func topDecileRetention(shortOrder, longOrder []int) float64 {
	size := (len(shortOrder) + 9) / 10
	top := make(map[int]bool, size)
	for _, idx := range longOrder[:size] {
		top[idx] = true
	}

	kept := 0
	for _, idx := range shortOrder[:size] {
		if top[idx] {
			kept++
		}
	}
	return fraction(kept, size)
}

func fraction(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundTo(float64(part)/float64(total), 4)
}
