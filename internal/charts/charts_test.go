package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

func sampleViews() *domain.Views {
	return &domain.Views{
		Filter: domain.FilterSelection{Region: domain.AllRegions, Category: "AMEACA"},
		TopFrequency: []domain.CategoryCount{
			{Category: "AMEACA", Count: 30}, {Category: "LESAO CORPORAL", Count: 12}, {Category: "INJURIA", Count: 12},
		},
		TopAverage: []domain.CategoryAverage{{Category: "AMEACA", Average: 3.25}},
		CategorySeries: []domain.YearCount{
			{Year: 2019, Count: 4}, {Year: 2021, Count: 9},
		},
		TopSeries: []domain.CategorySeries{
			{Category: "AMEACA", Points: []domain.YearCount{{Year: 2019, Count: 4}, {Year: 2021, Count: 9}}},
			{Category: "INJURIA", Points: []domain.YearCount{{Year: 2020, Count: 2}}},
		},
		Regions: []domain.RegionCount{{Region: "CAPITAL", Count: 20}, {Region: "SERTAO", Count: 10}},
	}
}

func TestRenderEveryChart(t *testing.T) {
	r := NewRenderer()
	views := sampleViews()

	for _, name := range domain.ChartViews {
		for _, format := range []Format{FormatPNG, FormatSVG} {
			t.Run(string(name)+"."+string(format), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, r.Render(&buf, views, name, format))
				assert.NotZero(t, buf.Len())
				if format == FormatPNG {
					assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
				} else {
					assert.Contains(t, buf.String(), "<svg")
				}
			})
		}
	}
}

func TestRenderEmptyTable(t *testing.T) {
	r := NewRenderer()
	empty := &domain.Views{}

	for _, name := range domain.ChartViews {
		err := r.Render(&bytes.Buffer{}, empty, name, FormatPNG)
		assert.ErrorIs(t, err, ErrEmptyChart, string(name))
	}
}

func TestRenderUnknownView(t *testing.T) {
	err := NewRenderer().Render(&bytes.Buffer{}, sampleViews(), domain.ViewUnderreporting, FormatPNG)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyChart)
}

func TestAscendingOrder(t *testing.T) {
	labels, values := ascending(
		[]string{"A", "B", "C", "D"},
		[]float64{9, 5, 5, 1},
	)
	assert.Equal(t, []float64{1, 5, 5, 9}, values)
	// B outranks C, so it is drawn above it.
	assert.Equal(t, []string{"D", "C", "B", "A"}, labels)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
