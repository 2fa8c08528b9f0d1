package analytics

import (
	"sort"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// YearlySeries counts the records of category per year, ascending. Years
// without records are absent rather than zero.
func YearlySeries(records []domain.Record, category string) []domain.YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		if r.OffenseCategory == category {
			counts[r.Year]++
		}
	}
	return sortedYears(counts)
}

// YearlySeriesMulti returns the yearly series of the top n categories by
// frequency, in ranking order.
func YearlySeriesMulti(records []domain.Record, n int) []domain.CategorySeries {
	top := TopNByFrequency(records, n)
	byCategory := make(map[string]map[int]int, len(top))
	for _, c := range top {
		byCategory[c.Category] = make(map[int]int)
	}
	for _, r := range records {
		if counts, ok := byCategory[r.OffenseCategory]; ok {
			counts[r.Year]++
		}
	}

	out := make([]domain.CategorySeries, len(top))
	for i, c := range top {
		out[i] = domain.CategorySeries{Category: c.Category, Points: sortedYears(byCategory[c.Category])}
	}
	return out
}

func sortedYears(counts map[int]int) []domain.YearCount {
	out := make([]domain.YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, domain.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
