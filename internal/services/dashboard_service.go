package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thamirestcrl/eqc-teste/internal/analytics"
	"github.com/thamirestcrl/eqc-teste/internal/charts"
	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/exporter"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// DatasetProvider hands out the shared cleaned dataset
type DatasetProvider interface {
	Dataset(ctx context.Context) (*domain.Dataset, error)
	Reload(ctx context.Context) (*domain.Dataset, error)
}

// DashboardOptions feeds the filter selectors
type DashboardOptions struct {
	Regions         []string  `json:"regions"`
	Categories      []string  `json:"categories"`
	DefaultRegion   string    `json:"default_region"`
	DefaultCategory string    `json:"default_category"`
	RecordCount     int       `json:"record_count"`
	Source          string    `json:"source"`
	LoadedAt        time.Time `json:"loaded_at"`
}

// ExportFormat selects the summary export encoding
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type of the export
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// DashboardService computes views, charts and exports for a filter selection
type DashboardService struct {
	datasets DatasetProvider
	opts     analytics.Options
	renderer *charts.Renderer
	exporter *exporter.SummaryExporter
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service. A nil metrics or logger
// falls back to no-op instruments and the default logger.
func NewDashboardService(datasets DatasetProvider, opts analytics.Options,
	metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if metrics == nil {
		metrics = infrastructure.NoopBusinessMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		datasets: datasets,
		opts:     opts,
		renderer: charts.NewRenderer(),
		exporter: exporter.NewSummaryExporter(),
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "dashboard"),
	}
}

// Options returns the selector lists and defaults
func (s *DashboardService) Options(ctx context.Context) (*DashboardOptions, error) {
	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardOptions{
		Regions:         analytics.RegionOptions(ds),
		Categories:      analytics.DistinctCategories(ds),
		DefaultRegion:   domain.AllRegions,
		DefaultCategory: analytics.DefaultCategory(ds, s.opts.DefaultCategory),
		RecordCount:     ds.Len(),
		Source:          ds.Source(),
		LoadedAt:        ds.LoadedAt(),
	}, nil
}

// Views evaluates every view for filter
func (s *DashboardService) Views(ctx context.Context, filter domain.FilterSelection) (*domain.Views, error) {
	ds, err := s.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	views := analytics.Render(ds, filter, s.opts)
	elapsed := time.Since(start)
	s.metrics.RecordViews(ctx, views, elapsed)

	s.logger.DebugContext(ctx, "views rendered",
		slog.String("region", views.Filter.Region),
		slog.String("category", views.Filter.Category),
		slog.Int("records", views.RecordCount),
		slog.Int("skipped", len(views.Skipped)),
		slog.Duration("duration", elapsed))
	return views, nil
}

// Chart renders one chart for filter. A view skipped for the selection, or
// one with no rows, is reported as an empty-set error.
func (s *DashboardService) Chart(ctx context.Context, name domain.ViewName, filter domain.FilterSelection, format string) ([]byte, charts.Format, error) {
	if !name.IsChart() {
		return nil, "", apperrors.NewAppError(apperrors.ErrTypeNotFound,
			fmt.Sprintf("chart %q not found", name), ErrUnknownChart).
			WithContext("chart", string(name))
	}
	f, err := charts.ParseFormat(format)
	if err != nil {
		return nil, "", apperrors.NewAppError(apperrors.ErrTypeValidation, err.Error(), ErrUnknownFormat).
			WithContext("format", format)
	}

	views, err := s.Views(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	if reason, skipped := views.Skipped[name]; skipped {
		return nil, "", skippedError(name, reason)
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, views, name, f); err != nil {
		if errors.Is(err, charts.ErrEmptyChart) {
			return nil, "", skippedError(name, "no rows for the selection")
		}
		return nil, "", fmt.Errorf("render chart %s: %w", name, err)
	}

	s.metrics.RecordChart(ctx, name, string(f))
	return buf.Bytes(), f, nil
}

// Summary exports the under-reporting table for filter
func (s *DashboardService) Summary(ctx context.Context, filter domain.FilterSelection, format ExportFormat) ([]byte, error) {
	views, err := s.Views(ctx, filter)
	if err != nil {
		return nil, err
	}
	if reason, skipped := views.Skipped[domain.ViewUnderreporting]; skipped {
		return nil, skippedError(domain.ViewUnderreporting, reason)
	}

	var buf bytes.Buffer
	switch format {
	case ExportCSV:
		err = s.exporter.WriteCSV(&buf, views.Underreporting)
	case ExportXLSX:
		err = s.exporter.WriteXLSX(&buf, views.Underreporting)
	default:
		return nil, apperrors.NewAppError(apperrors.ErrTypeValidation,
			fmt.Sprintf("export format %q", format), ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("export summary: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryCSV exports the under-reporting table as CSV
func (s *DashboardService) SummaryCSV(ctx context.Context, filter domain.FilterSelection) ([]byte, error) {
	return s.Summary(ctx, filter, ExportCSV)
}

// SummaryXLSX exports the under-reporting table as an Excel workbook
func (s *DashboardService) SummaryXLSX(ctx context.Context, filter domain.FilterSelection) ([]byte, error) {
	return s.Summary(ctx, filter, ExportXLSX)
}

// Reload re-reads the artifact, typically after `eqc prepare` ran again
func (s *DashboardService) Reload(ctx context.Context) (*DashboardOptions, error) {
	ds, err := s.datasets.Reload(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.String("source", ds.Source()),
		slog.Int("records", ds.Len()))
	return s.Options(ctx)
}

func skippedError(name domain.ViewName, reason string) error {
	return apperrors.NewEmptySetError(fmt.Sprintf("view %s skipped: %s", name, reason)).
		WithContext("view", string(name))
}
