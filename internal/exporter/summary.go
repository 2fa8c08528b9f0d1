package exporter

import (
	"io"
	"strconv"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// SummaryHeaders label the summary table columns as the dashboard shows them
var SummaryHeaders = []string{"Natureza do Crime", "Casos Registrados", "Subnotificação (Estimada)"}

// SummarySheet names the worksheet of the XLSX export
const SummarySheet = "Resumo"

// SummaryExporter exports the under-reporting table
type SummaryExporter struct {
	csv  *CSVWriter
	xlsx *XLSXWriter
}

// NewSummaryExporter creates an exporter with the default writers
func NewSummaryExporter() *SummaryExporter {
	x := NewXLSXWriter(SummarySheet)
	x.ColumnWidths = []float64{48, 18, 26}
	return &SummaryExporter{csv: NewCSVWriter(), xlsx: x}
}

// WriteCSV writes rows as CSV
func (e *SummaryExporter) WriteCSV(w io.Writer, rows []domain.UnderreportingRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{r.Category, strconv.Itoa(r.Reported), strconv.Itoa(r.EstimatedUnreported)}
	}
	return e.csv.Write(w, SummaryHeaders, records)
}

// WriteXLSX writes rows as a workbook with numeric count cells
func (e *SummaryExporter) WriteXLSX(w io.Writer, rows []domain.UnderreportingRow) error {
	cells := make([][]any, len(rows))
	for i, r := range rows {
		cells[i] = []any{r.Category, r.Reported, r.EstimatedUnreported}
	}
	return e.xlsx.Write(w, SummaryHeaders, cells)
}
