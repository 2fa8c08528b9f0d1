// Package dataprocessing turns the SDS-PE domestic-violence microdata
// spreadsheet into the cleaned, minimal record set the dashboard reads.
//
// # Data Flow
//
//	Excel sheet → ReadSheet → RawTable → Cleaner → []domain.Record → ArtifactWriter
//
// ReadSheet opens the workbook with excelize and returns the header and the
// raw (unformatted) cell values of the configured sheet. The Cleaner
// normalizes column names, renames known aliases, parses fact dates
// leniently, derives the year, strips the boilerplate phrase from the
// offense category and drops rows without a year or beyond the horizon.
// Pipeline ties the stages together and hands the projection to the
// artifact store, which replaces the previous artifact in full.
//
// # Error Handling
//
//   - Missing workbook: errors.ErrMissingSourceFile with the expected path
//   - Missing required column after normalization: errors.ErrMissingColumn,
//     listing the columns found
//   - Unparseable dates never fail a run; the rows are counted and dropped
//   - Anything else aborts the run with the cause wrapped; nothing is written
package dataprocessing
