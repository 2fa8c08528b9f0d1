// Package charts draws the dashboard views with gonum/plot and encodes them
// as PNG or SVG.
//
// Bar charts list their bars bottom-up in ascending order of value so the
// largest bar sits on top. Drawing an empty table returns ErrEmptyChart.
package charts
