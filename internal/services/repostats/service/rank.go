package service

import (
	"sort"

	"ghstats/internal/services/repostats/domain"
)

// Select ranks the aggregate by count, highest first, and keeps at most limit rows.
// Equal counts keep first-seen order. A limit above the key count returns every key
func Select(agg *Aggregate, limit int) []domain.RankedRepo {
	if agg == nil || limit <= 0 || agg.Len() == 0 {
		return nil
	}
	rows := make([]domain.RankedRepo, 0, agg.Len())
	for _, k := range agg.order {
		rows = append(rows, domain.RankedRepo{Key: k, Count: agg.counts[k]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows[:min(limit, len(rows))]
}
