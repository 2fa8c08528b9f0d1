package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
)

// RawTable is one worksheet as strings: the header row and every data row.
// Numeric cells keep their raw value, so dates arrive as Excel serials.
type RawTable struct {
	Header   []string
	Rows     [][]string
	Date1904 bool
}

// ReadSheet reads the named sheet of the workbook at path. The first row is
// the header; rows after it are returned as-is, possibly shorter than the
// header when trailing cells are empty.
func ReadSheet(ctx context.Context, path, sheet string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewMissingSourceError(path, err)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to stat %s", path), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close workbook", slog.String("path", path), slog.String("error", cerr.Error()))
		}
	}()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	table := &RawTable{Date1904: date1904}
	if len(rows) == 0 {
		return table, nil
	}
	table.Header = rows[0]
	table.Rows = rows[1:]
	return table, nil
}
