package dataprocessing

import (
	"strings"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// NormalizeCategory removes every occurrence of phrase from category and
// trims the surrounding whitespace. It is a no-op apart from trimming when
// the phrase is absent.
func NormalizeCategory(category, phrase string) string {
	if phrase != "" {
		category = strings.ReplaceAll(category, phrase, "")
	}
	return strings.TrimSpace(category)
}

// CleanStats counts what the cleaner kept and dropped
type CleanStats struct {
	RowsRead             int
	DroppedUnparseable   int
	DroppedBeyondHorizon int
}

// Cleaner turns raw rows into cleaned records
type Cleaner struct {
	// HorizonYear is the last year kept; rows with year > HorizonYear drop.
	HorizonYear int
	// Phrase is the boilerplate removed from every offense category.
	Phrase string
}

// Clean normalizes the header, resolves the canonical columns and projects
// every row with a parseable date inside the horizon. A required column
// missing after normalization fails the whole table.
func (c Cleaner) Clean(table *RawTable) ([]domain.Record, CleanStats, error) {
	columns := RenameAliases(NormalizeColumns(table.Header))
	idx := columnIndex(columns)

	for _, required := range RequiredColumns {
		if _, ok := idx[required]; !ok {
			return nil, CleanStats{}, apperrors.NewMissingColumnError(required, columns)
		}
	}

	dateCol, catCol, regionCol := idx[ColumnDate], idx[ColumnNatureza], idx[ColumnRegion]
	bound := c.HorizonYear + 1

	stats := CleanStats{RowsRead: len(table.Rows)}
	records := make([]domain.Record, 0, len(table.Rows))

	for _, row := range table.Rows {
		date, ok := ParseDate(cell(row, dateCol), table.Date1904)
		if !ok {
			stats.DroppedUnparseable++
			continue
		}

		year := date.Year()
		if year >= bound {
			stats.DroppedBeyondHorizon++
			continue
		}

		records = append(records, domain.Record{
			Year:            year,
			OffenseCategory: NormalizeCategory(cell(row, catCol), c.Phrase),
			Region:          strings.TrimSpace(cell(row, regionCol)),
		})
	}

	return records, stats, nil
}

// cell returns row[i], or "" for cells trimmed off the end of the row
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
