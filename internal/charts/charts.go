package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// ErrEmptyChart is returned when the table behind a chart has no rows
var ErrEmptyChart = errors.New("charts: nothing to draw")

// Format is an output encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg"
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("charts: unsupported format %q", s)
}

// ContentType returns the MIME type of the encoding
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Series colors
var (
	ColorFrequency = rgb(0x86, 0x4c, 0xe2)
	ColorAverage   = rgb(0xff, 0xaa, 0xd0)
	ColorSeries    = rgb(0xcd, 0x97, 0xf8)
	ColorRegions   = rgb(0x00, 0x7b, 0xff)
)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Renderer draws charts at a fixed canvas size
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer with a landscape canvas
func NewRenderer() *Renderer {
	return &Renderer{Width: 12 * vg.Inch, Height: 7 * vg.Inch}
}

// Render draws the named view from views and writes it to w
func (r *Renderer) Render(w io.Writer, views *domain.Views, name domain.ViewName, format Format) error {
	p, err := Plot(views, name)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.Width, r.Height, string(format))
	if err != nil {
		return fmt.Errorf("charts: encode %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Plot builds the plot for one view
func Plot(views *domain.Views, name domain.ViewName) (*plot.Plot, error) {
	switch name {
	case domain.ViewTopFrequency:
		return TopFrequency(views.TopFrequency)
	case domain.ViewTopAverage:
		return TopAverage(views.TopAverage)
	case domain.ViewCategorySeries:
		return CategorySeries(views.Filter.Category, views.CategorySeries)
	case domain.ViewTopSeries:
		return TopSeries(views.TopSeries)
	case domain.ViewRegions:
		return Regions(views.Regions)
	}
	return nil, fmt.Errorf("charts: no chart for view %q", name)
}

// TopFrequency draws the category frequency ranking
func TopFrequency(rows []domain.CategoryCount) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i], values[i] = r.Category, float64(r.Count)
	}
	return horizontalBars(
		fmt.Sprintf("Top %d Frequência de Crimes por Natureza", len(rows)),
		"Número de Ocorrências", labels, values, ColorFrequency, "%.0f")
}

// TopAverage draws the yearly-average ranking
func TopAverage(rows []domain.CategoryAverage) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i], values[i] = r.Category, r.Average
	}
	return horizontalBars(
		fmt.Sprintf("Média Anual de Ocorrências por Tipo de Delito (Top %d)", len(rows)),
		"Média de Ocorrências por Ano", labels, values, ColorAverage, "%.2f")
}

// Regions draws the regional frequency over the whole dataset
func Regions(rows []domain.RegionCount) (*plot.Plot, error) {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i], values[i] = r.Region, float64(r.Count)
	}
	return horizontalBars("Frequência de Crimes por Região Geográfica em PE",
		"Número de Ocorrências", labels, values, ColorRegions, "%.0f")
}

// CategorySeries draws one category's yearly counts
func CategorySeries(category string, points []domain.YearCount) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrEmptyChart
	}

	p := newPlot(fmt.Sprintf("Frequência Anual de %q", category), "Ano", "Número de Ocorrências")
	line, scatter, err := plotter.NewLinePoints(yearXYs(points))
	if err != nil {
		return nil, err
	}
	line.Color = ColorSeries
	line.Width = vg.Points(3)
	scatter.GlyphStyle.Color = ColorSeries
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(plotter.NewGrid(), line, scatter)
	p.X.Tick.Marker = yearTicks(points)
	return p, nil
}

// TopSeries draws one line per category, in ranking order
func TopSeries(series []domain.CategorySeries) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, ErrEmptyChart
	}

	p := newPlot(fmt.Sprintf("Evolução Anual dos %d Principais Tipos de Crime", len(series)),
		"Ano", "Número de Ocorrências")
	p.Add(plotter.NewGrid())

	var all []domain.YearCount
	for i, s := range series {
		line, err := plotter.NewLine(yearXYs(s.Points))
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.Category, line)
		all = append(all, s.Points...)
	}
	p.Legend.Top = true
	p.X.Tick.Marker = yearTicks(all)
	return p, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

// horizontalBars draws labels/values as horizontal bars. Input is in
// ranking order; bars are laid out ascending so the largest is on top.
func horizontalBars(title, xLabel string, labels []string, values []float64, c color.Color, valueFmt string) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, ErrEmptyChart
	}
	labels, values = ascending(labels, values)

	p := newPlot(title, xLabel, "")
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)

	xys := make(plotter.XYs, len(values))
	text := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: v, Y: float64(i)}
		text[i] = " " + fmt.Sprintf(valueFmt, v)
	}
	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(valueLabels)

	p.X.Min = 0
	p.X.Max = values[len(values)-1] * 1.12
	return p, nil
}

// ascending returns copies of labels and values ordered by increasing
// value; equal values keep their reversed ranking order so the higher
// ranked row ends up on top.
func ascending(labels []string, values []float64) ([]string, []float64) {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = len(values) - 1 - i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	outL := make([]string, len(idx))
	outV := make([]float64, len(idx))
	for i, j := range idx {
		outL[i], outV[i] = labels[j], values[j]
	}
	return outL, outV
}

func yearXYs(points []domain.YearCount) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(pt.Year), Y: float64(pt.Count)}
	}
	return xys
}

// yearTicks labels every year present as an integer
func yearTicks(points []domain.YearCount) plot.Ticker {
	seen := make(map[int]bool)
	var ticks []plot.Tick
	for _, pt := range points {
		if seen[pt.Year] {
			continue
		}
		seen[pt.Year] = true
		ticks = append(ticks, plot.Tick{Value: float64(pt.Year), Label: strconv.Itoa(pt.Year)})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return plot.ConstantTicks(ticks)
}
