package domain

// AllRegions is the region sentinel meaning "do not filter by region".
// It matches the label shown in the region selector.
const AllRegions = "Todas"

// FilterSelection is the session-scoped choice driving the derived views.
// It is never persisted; every request carries its own selection.
type FilterSelection struct {
	Region   string `json:"region" validate:"max=200"`
	Category string `json:"category" validate:"max=300"`
}

// IsAllRegions reports whether the selection applies no region filter.
// An empty region is treated as the sentinel.
func (f FilterSelection) IsAllRegions() bool {
	return f.Region == "" || f.Region == AllRegions
}
