// Package exporter writes the dashboard's summary table as CSV or as an
// Excel workbook.
//
// CSVWriter prefixes a UTF-8 byte order mark by default so spreadsheet
// software opens accented category names correctly. XLSXWriter builds a
// single-sheet workbook with excelize.
//
// Example usage:
//
//	rows, _ := analytics.UnderreportingTable(records, 10, 0.4)
//	err := exporter.NewSummaryExporter().WriteCSV(w, rows)
package exporter
