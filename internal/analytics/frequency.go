package analytics

import (
	"sort"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// ApplyRegionFilter returns the records of region. The AllRegions sentinel
// (or an empty region) returns records unchanged.
func ApplyRegionFilter(records []domain.Record, region string) []domain.Record {
	if (domain.FilterSelection{Region: region}).IsAllRegions() {
		return records
	}
	out := make([]domain.Record, 0)
	for _, r := range records {
		if r.Region == region {
			out = append(out, r)
		}
	}
	return out
}

// tally counts keys preserving first-appearance order
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// ranked returns keys by descending count; equal counts keep first
// appearance order.
func (t *tally) ranked() []string {
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	return keys
}

func categoryTally(records []domain.Record) *tally {
	t := newTally()
	for _, r := range records {
		t.add(r.OffenseCategory)
	}
	return t
}

// TopNByFrequency ranks categories by record count and keeps at most n
func TopNByFrequency(records []domain.Record, n int) []domain.CategoryCount {
	t := categoryTally(records)
	keys := limit(t.ranked(), n)

	out := make([]domain.CategoryCount, len(keys))
	for i, k := range keys {
		out[i] = domain.CategoryCount{Category: k, Count: t.counts[k]}
	}
	return out
}

// RegionFrequency counts records per region, descending. Callers pass the
// full dataset: the regional view ignores the region filter.
func RegionFrequency(records []domain.Record) []domain.RegionCount {
	t := newTally()
	for _, r := range records {
		t.add(r.Region)
	}

	keys := t.ranked()
	out := make([]domain.RegionCount, len(keys))
	for i, k := range keys {
		out[i] = domain.RegionCount{Region: k, Count: t.counts[k]}
	}
	return out
}

func limit(keys []string, n int) []string {
	if n <= 0 {
		return keys[:0]
	}
	if len(keys) > n {
		return keys[:n]
	}
	return keys
}
