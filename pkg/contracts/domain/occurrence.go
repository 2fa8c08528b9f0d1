package domain

import (
	"sort"
	"time"
)

// Record is one cleaned occurrence: the minimal projection of a spreadsheet
// row that the dashboard consumes.
//
// Invariants held by every Record produced by the preparation pipeline:
//   - Year comes from a parseable fact date (never a placeholder)
//   - Year is strictly below the configured horizon year + 1
//   - OffenseCategory has the domestic-violence boilerplate phrase removed
//     and is whitespace-trimmed
type Record struct {
	Year            int    `json:"year"`
	OffenseCategory string `json:"offense_category"`
	Region          string `json:"region"`
}

// Dataset is the immutable, read-only Cleaned Record set shared by every
// dashboard session. It has no mutating methods; option accessors return
// fresh slices.
type Dataset struct {
	records    []Record
	source     string
	loadedAt   time.Time
	regions    []string
	categories []string
}

// NewDataset takes ownership of records. Callers must not modify the slice
// afterwards.
func NewDataset(records []Record, source string, loadedAt time.Time) *Dataset {
	regionSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})
	for _, r := range records {
		regionSet[r.Region] = struct{}{}
		categorySet[r.OffenseCategory] = struct{}{}
	}

	return &Dataset{
		records:    records,
		source:     source,
		loadedAt:   loadedAt,
		regions:    sortedKeys(regionSet),
		categories: sortedKeys(categorySet),
	}
}

// Records returns the underlying records. The slice is shared and must be
// treated as read-only.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Source is the artifact path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt is when the dataset was materialized in memory.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Regions returns the sorted distinct region labels.
func (d *Dataset) Regions() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.regions...)
}

// Categories returns the sorted distinct offense categories.
func (d *Dataset) Categories() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.categories...)
}

// HasCategory reports whether category appears in the dataset (exact match).
func (d *Dataset) HasCategory(category string) bool {
	if d == nil {
		return false
	}
	i := sort.SearchStrings(d.categories, category)
	return i < len(d.categories) && d.categories[i] == category
}

// HasRegion reports whether region appears in the dataset (exact match).
func (d *Dataset) HasRegion(region string) bool {
	if d == nil {
		return false
	}
	i := sort.SearchStrings(d.regions, region)
	return i < len(d.regions) && d.regions[i] == region
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
