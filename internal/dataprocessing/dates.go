package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order for textual cells. Slashed dates are
// day-first, as written in the Brazilian source data.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
}

// maxExcelSerial is 9999-12-31, the last day Excel can represent
const maxExcelSerial = 2958465

// ParseDate parses a fact-date cell leniently. Numeric cells are Excel
// serial dates (1900 system unless date1904). Anything unparseable yields
// ok == false rather than an error.
func ParseDate(value string, date1904 bool) (t time.Time, ok bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial >= maxExcelSerial+1 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
