package analytics

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/shared/testutil"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

func rec(year int, category, region string) domain.Record {
	return domain.Record{Year: year, OffenseCategory: category, Region: region}
}

func randomRecords(r *rand.Rand, n int) []domain.Record {
	categories := []string{"AMEACA", "LESAO CORPORAL", "INJURIA", "ESTUPRO", "DANO", "VIAS DE FATO"}
	regions := []string{"CAPITAL", "SERTAO", "AGRESTE", "ZONA DA MATA"}
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = rec(2015+r.Intn(10), categories[r.Intn(len(categories))], regions[r.Intn(len(regions))])
	}
	return out
}

func TestApplyRegionFilter(t *testing.T) {
	records := testutil.FixtureRecords()

	assert.Equal(t, records, ApplyRegionFilter(records, domain.AllRegions))
	assert.Equal(t, records, ApplyRegionFilter(records, ""))

	sertao := ApplyRegionFilter(records, "SERTAO")
	require.Len(t, sertao, 2)
	for _, r := range sertao {
		assert.Equal(t, "SERTAO", r.Region)
	}

	none := ApplyRegionFilter(records, "NOWHERE")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTopNByFrequency(t *testing.T) {
	records := []domain.Record{
		rec(2020, "B", "X"), rec(2020, "A", "X"), rec(2021, "A", "X"),
		rec(2021, "C", "X"), rec(2021, "B", "X"), rec(2022, "D", "X"),
	}

	assert.Equal(t, []domain.CategoryCount{
		{Category: "B", Count: 2},
		{Category: "A", Count: 2},
		{Category: "C", Count: 1},
	}, TopNByFrequency(records, 3))

	assert.Len(t, TopNByFrequency(records, 10), 4)
	assert.Empty(t, TopNByFrequency(records, 0))
	assert.Empty(t, TopNByFrequency(nil, 5))
}

func TestTopNByFrequencyRanksCorrectly(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		records := randomRecords(r, 1+r.Intn(200))
		n := 1 + r.Intn(5)

		all := TopNByFrequency(records, 100)
		top := TopNByFrequency(records, n)
		require.LessOrEqual(t, len(top), n)

		included := make(map[string]bool)
		minIncluded := int(^uint(0) >> 1)
		for _, c := range top {
			included[c.Category] = true
			if c.Count < minIncluded {
				minIncluded = c.Count
			}
		}
		for _, c := range all {
			if !included[c.Category] {
				assert.GreaterOrEqual(t, minIncluded, c.Count)
			}
		}
	}
}

func TestAveragePerYear(t *testing.T) {
	records := []domain.Record{
		rec(2020, "A", "X"), rec(2021, "A", "X"), rec(2021, "A", "X"), rec(2022, "B", "X"),
	}

	avg, err := AveragePerYear(records)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, avg["A"], 1e-9)
	assert.InDelta(t, 1.0/3.0, avg["B"], 1e-9)

	top, err := TopNByAverage(records, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryAverage{{Category: "A", Average: 1}}, top)
}

func TestAveragePerYearGuardsEmptySet(t *testing.T) {
	_, err := AveragePerYear(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoYears)
	assert.True(t, errors.Is(err, apperrors.ErrEmptySet))

	_, err = TopNByAverage([]domain.Record{}, 10)
	assert.ErrorIs(t, err, ErrNoYears)
}

func TestUnderreportingTable(t *testing.T) {
	records := make([]domain.Record, 0, 41)
	for i := 0; i < 40; i++ {
		records = append(records, rec(2020, "AMEACA", "X"))
	}
	records = append(records, rec(2020, "DANO", "X"))

	rows, err := UnderreportingTable(records, 10, 0.4)
	require.NoError(t, err)
	assert.Equal(t, []domain.UnderreportingRow{
		{Category: "AMEACA", Reported: 40, EstimatedUnreported: 60},
		{Category: "DANO", Reported: 1, EstimatedUnreported: 2},
	}, rows)

	for _, rate := range []float64{0, 1, -0.2, 1.5} {
		_, err := UnderreportingTable(records, 10, rate)
		assert.ErrorIs(t, err, ErrInvalidReportingRate, "rate %v", rate)
	}
}

func TestEstimateUnreportedRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 60, EstimateUnreported(40, 0.4))
	assert.Equal(t, 4, EstimateUnreported(3, 0.4))
	assert.Equal(t, 8, EstimateUnreported(5, 0.4))
	assert.Equal(t, 0, EstimateUnreported(0, 0.4))
	assert.Equal(t, 1, EstimateUnreported(1, 0.5))
}

func TestYearlySeries(t *testing.T) {
	records := []domain.Record{
		rec(2022, "A", "X"), rec(2018, "A", "X"), rec(2022, "A", "Y"), rec(2020, "B", "X"),
	}

	assert.Equal(t, []domain.YearCount{{Year: 2018, Count: 1}, {Year: 2022, Count: 2}}, YearlySeries(records, "A"))
	assert.Empty(t, YearlySeries(records, "Z"))
}

func TestYearlySeriesMulti(t *testing.T) {
	records := []domain.Record{
		rec(2020, "A", "X"), rec(2021, "B", "X"), rec(2021, "B", "X"), rec(2022, "C", "X"),
	}

	got := YearlySeriesMulti(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Category)
	assert.Equal(t, []domain.YearCount{{Year: 2021, Count: 2}}, got[0].Points)
	assert.Equal(t, "A", got[1].Category)
}

func TestFixtureViews(t *testing.T) {
	records := testutil.FixtureRecords()
	require.Len(t, records, 4)

	total := 0
	for _, rc := range RegionFrequency(records) {
		total += rc.Count
	}
	assert.Equal(t, 4, total)

	series := YearlySeries(records, "AMEACA")
	assert.Equal(t, []domain.YearCount{{Year: 2020, Count: 2}, {Year: 2021, Count: 1}}, series)
	sum := 0
	for _, p := range series {
		sum += p.Count
	}
	assert.Equal(t, 3, sum)
}

func TestDefaultCategoryAndOptions(t *testing.T) {
	ds := domain.NewDataset(testutil.FixtureRecords(), "mem", time.Now())

	assert.Equal(t, "AMEACA", DefaultCategory(ds, "AMEACA"))
	assert.Equal(t, "AMEACA", DefaultCategory(ds, "MISSING"))
	assert.Equal(t, "", DefaultCategory(domain.NewDataset(nil, "mem", time.Now()), "AMEACA"))

	other := domain.NewDataset([]domain.Record{rec(2020, "ZETA", "X"), rec(2020, "BETA", "X")}, "mem", time.Now())
	assert.Equal(t, "BETA", DefaultCategory(other, "AMEACA"))

	assert.Equal(t, []string{domain.AllRegions, "CAPITAL", "SERTAO"}, RegionOptions(ds))
	assert.Equal(t, []string{"AMEACA", "LESAO CORPORAL"}, DistinctCategories(ds))
	assert.Equal(t, []string{"CAPITAL", "SERTAO"}, DistinctRegions(ds))

	f := NormalizeFilter(ds, domain.FilterSelection{}, "AMEACA")
	assert.Equal(t, domain.FilterSelection{Region: domain.AllRegions, Category: "AMEACA"}, f)
}
