package analytics

import (
	"math"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// ErrInvalidReportingRate rejects rates outside the open interval (0, 1)
var ErrInvalidReportingRate = apperrors.NewAppValidationError("reporting rate must be in (0, 1)")

// EstimateUnreported returns round(reported/rate - reported), rounding half
// to even.
func EstimateUnreported(reported int, rate float64) int {
	c := float64(reported)
	return int(math.RoundToEven(c/rate - c))
}

// UnderreportingTable pairs the top n categories by frequency with an
// estimate of unreported cases under the assumed reporting rate.
func UnderreportingTable(records []domain.Record, n int, rate float64) ([]domain.UnderreportingRow, error) {
	if !(rate > 0 && rate < 1) {
		return nil, ErrInvalidReportingRate
	}

	top := TopNByFrequency(records, n)
	out := make([]domain.UnderreportingRow, len(top))
	for i, c := range top {
		out[i] = domain.UnderreportingRow{
			Category:            c.Category,
			Reported:            c.Count,
			EstimatedUnreported: EstimateUnreported(c.Count, rate),
		}
	}
	return out, nil
}
