// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a capturing slog handler and builders for
// fixture workbooks and cleaned artifacts, so that packages testing the
// preparation and dashboard paths exercise the same on-disk formats as
// production.
package shared
