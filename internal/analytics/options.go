package analytics

import (
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// RegionOptions is the region selector list: the sentinel, then every
// region sorted.
func RegionOptions(ds *domain.Dataset) []string {
	return append([]string{domain.AllRegions}, ds.Regions()...)
}

// DistinctRegions returns the sorted distinct regions
func DistinctRegions(ds *domain.Dataset) []string { return ds.Regions() }

// DistinctCategories returns the sorted distinct offense categories
func DistinctCategories(ds *domain.Dataset) []string { return ds.Categories() }

// DefaultCategory returns preferred when the dataset has it, else the first
// category alphabetically, else "".
func DefaultCategory(ds *domain.Dataset, preferred string) string {
	if ds.HasCategory(preferred) {
		return preferred
	}
	if cats := ds.Categories(); len(cats) > 0 {
		return cats[0]
	}
	return ""
}

// NormalizeFilter fills defaults into a selection: no region means all
// regions, no category means DefaultCategory. Unknown values are kept; they
// select nothing.
func NormalizeFilter(ds *domain.Dataset, f domain.FilterSelection, preferredCategory string) domain.FilterSelection {
	if f.IsAllRegions() {
		f.Region = domain.AllRegions
	}
	if f.Category == "" {
		f.Category = DefaultCategory(ds, preferredCategory)
	}
	return f
}
