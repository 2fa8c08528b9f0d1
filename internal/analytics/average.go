package analytics

import (
	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// ErrNoYears is returned when an average per year is requested over a set
// with no distinct years, i.e. an empty filtered set.
var ErrNoYears = apperrors.NewEmptySetError("no distinct years in the filtered set")

// DistinctYearCount returns the number of distinct years in records
func DistinctYearCount(records []domain.Record) int {
	years := make(map[int]struct{})
	for _, r := range records {
		years[r.Year] = struct{}{}
	}
	return len(years)
}

// AveragePerYear divides each category's count by the number of distinct
// years present in records (not per category).
func AveragePerYear(records []domain.Record) (map[string]float64, error) {
	years := DistinctYearCount(records)
	if years == 0 {
		return nil, ErrNoYears
	}

	t := categoryTally(records)
	out := make(map[string]float64, len(t.counts))
	for k, c := range t.counts {
		out[k] = float64(c) / float64(years)
	}
	return out, nil
}

// TopNByAverage ranks categories by average per year and keeps at most n
func TopNByAverage(records []domain.Record, n int) ([]domain.CategoryAverage, error) {
	years := DistinctYearCount(records)
	if years == 0 {
		return nil, ErrNoYears
	}

	// The denominator is shared, so the frequency ranking is the average
	// ranking.
	top := TopNByFrequency(records, n)
	out := make([]domain.CategoryAverage, len(top))
	for i, c := range top {
		out[i] = domain.CategoryAverage{
			Category: c.Category,
			Average:  float64(c.Count) / float64(years),
		}
	}
	return out, nil
}
