package analytics

import (
	"errors"
	"strconv"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// Options sizes the rankings and carries the policy constants
type Options struct {
	TopFrequency    int
	TopAverage      int
	TopSummary      int
	TopSeries       int
	ReportingRate   float64
	DefaultCategory string
}

// OptionsFromConfig maps the analysis configuration onto Options
func OptionsFromConfig(cfg config.AnalysisConfig) Options {
	return Options{
		TopFrequency:    cfg.TopFrequency,
		TopAverage:      cfg.TopAverage,
		TopSummary:      cfg.TopSummary,
		TopSeries:       cfg.TopSeries,
		ReportingRate:   cfg.ReportingRate,
		DefaultCategory: cfg.DefaultCategory,
	}
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Analysis)
}

// Render evaluates every view for one filter selection. Views that cannot
// be computed for the selection are listed in Views.Skipped with a reason;
// the others are still returned. The regional view always covers the whole
// dataset.
func Render(ds *domain.Dataset, filter domain.FilterSelection, opts Options) *domain.Views {
	filter = NormalizeFilter(ds, filter, opts.DefaultCategory)
	all := ds.Records()
	filtered := ApplyRegionFilter(all, filter.Region)

	v := &domain.Views{
		Filter:        filter,
		RecordCount:   len(filtered),
		ReportingRate: opts.ReportingRate,
		Skipped:       make(map[domain.ViewName]string),
	}

	v.TopFrequency = TopNByFrequency(filtered, opts.TopFrequency)

	if avg, err := TopNByAverage(filtered, opts.TopAverage); err != nil {
		v.Skipped[domain.ViewTopAverage] = reason(err)
	} else {
		v.TopAverage = avg
	}

	if rows, err := UnderreportingTable(filtered, opts.TopSummary, opts.ReportingRate); err != nil {
		v.Skipped[domain.ViewUnderreporting] = reason(err)
	} else {
		v.Underreporting = rows
	}

	v.CategorySeries = YearlySeries(filtered, filter.Category)
	if len(v.CategorySeries) == 0 {
		v.Skipped[domain.ViewCategorySeries] = "no records for category " + strconv.Quote(filter.Category) + " in the selection"
	}

	v.TopSeries = YearlySeriesMulti(filtered, opts.TopSeries)
	v.Regions = RegionFrequency(all)

	return v
}

func reason(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
