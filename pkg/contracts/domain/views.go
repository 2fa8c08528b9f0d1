package domain

// CategoryCount is one row of a frequency ranking.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryAverage is one row of the yearly-average ranking.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// UnderreportingRow pairs a reported count with the estimated number of
// unreported cases. The estimate is an illustrative point estimate derived
// from an assumed reporting rate, not a measurement.
type UnderreportingRow struct {
	Category            string `json:"category"`
	Reported            int    `json:"reported"`
	EstimatedUnreported int    `json:"estimated_unreported"`
}

// YearCount is one point of a sparse yearly series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CategorySeries is the yearly series of a single category.
type CategorySeries struct {
	Category string      `json:"category"`
	Points   []YearCount `json:"points"`
}

// RegionCount is one row of the regional frequency view.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// ViewName identifies one derived table / chart of the dashboard.
type ViewName string

const (
	ViewTopFrequency   ViewName = "top-frequency"
	ViewTopAverage     ViewName = "top-average"
	ViewUnderreporting ViewName = "underreporting"
	ViewCategorySeries ViewName = "category-series"
	ViewTopSeries      ViewName = "top-series"
	ViewRegions        ViewName = "regions"
)

// ChartViews lists the views that have a chart rendering.
var ChartViews = []ViewName{
	ViewTopFrequency,
	ViewTopAverage,
	ViewCategorySeries,
	ViewTopSeries,
	ViewRegions,
}

// IsChart reports whether the view has a chart rendering.
func (v ViewName) IsChart() bool {
	for _, c := range ChartViews {
		if c == v {
			return true
		}
	}
	return false
}

// Views holds every derived table for one (dataset, filter) evaluation.
// Skipped maps a view to the reason it was not computed (for example an
// empty filtered set); skipped views have nil tables.
type Views struct {
	Filter         FilterSelection     `json:"filter"`
	RecordCount    int                 `json:"record_count"`
	TopFrequency   []CategoryCount     `json:"top_frequency"`
	TopAverage     []CategoryAverage   `json:"top_average"`
	Underreporting []UnderreportingRow `json:"underreporting"`
	CategorySeries []YearCount         `json:"category_series"`
	TopSeries      []CategorySeries    `json:"top_series"`
	Regions        []RegionCount       `json:"regions"`
	ReportingRate  float64             `json:"reporting_rate"`
	Skipped        map[ViewName]string `json:"skipped,omitempty"`
}

// IsSkipped reports whether the named view was skipped.
func (v *Views) IsSkipped(name ViewName) bool {
	_, ok := v.Skipped[name]
	return ok
}
