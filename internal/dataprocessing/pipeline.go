package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	"github.com/thamirestcrl/eqc-teste/internal/validation"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// ArtifactWriter persists the cleaned records, replacing any prior artifact
type ArtifactWriter interface {
	Save(ctx context.Context, records []domain.Record) error
	Path() string
}

// Pipeline runs the preparation step: ingest, normalize, filter, project
// and persist.
type Pipeline struct {
	sourceFile string
	sheet      string
	cleaner    Cleaner
	validator  *validation.FileValidator
	writer     ArtifactWriter
	metrics    *infrastructure.BusinessMetrics
	logger     *slog.Logger
}

// NewPipeline creates a preparation pipeline. A nil metrics or logger falls
// back to no-op instruments and the default logger.
func NewPipeline(paths *config.Paths, analysis config.AnalysisConfig, writer ArtifactWriter,
	metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Pipeline {
	if metrics == nil {
		metrics = infrastructure.NoopBusinessMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "preparation")
	return &Pipeline{
		sourceFile: paths.SourceFile,
		sheet:      paths.Sheet,
		cleaner: Cleaner{
			HorizonYear: analysis.HorizonYear,
			Phrase:      analysis.BoilerplatePhrase,
		},
		validator: validation.NewFileValidator(logger),
		writer:    writer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run executes the pipeline once. On any failure no artifact is written and
// the partially filled report is returned alongside the error.
func (p *Pipeline) Run(ctx context.Context) (report *domain.PreparationReport, err error) {
	start := time.Now()
	report = &domain.PreparationReport{
		SourceFile:   p.sourceFile,
		Sheet:        p.sheet,
		ArtifactFile: p.writer.Path(),
		HorizonYear:  p.cleaner.HorizonYear,
	}
	defer func() {
		report.Duration = time.Since(start)
		p.metrics.RecordPreparation(ctx, report, err)
	}()

	p.logger.InfoContext(ctx, "reading source workbook",
		slog.String("path", p.sourceFile),
		slog.String("sheet", p.sheet))

	if err := p.validator.ValidateWorkbook(p.sourceFile); err != nil {
		return report, err
	}

	table, err := ReadSheet(ctx, p.sourceFile, p.sheet)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to read source workbook", slog.String("error", err.Error()))
		return report, err
	}
	report.ColumnsFound = RenameAliases(NormalizeColumns(table.Header))

	records, stats, err := p.cleaner.Clean(table)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingColumn) {
			p.logger.WarnContext(ctx, "source workbook lacks a required column",
				slog.Any("columns_found", report.ColumnsFound),
				slog.Any("required", RequiredColumns))
		}
		return report, err
	}
	report.RowsRead = stats.RowsRead
	report.DroppedUnparseable = stats.DroppedUnparseable
	report.DroppedBeyondHorizon = stats.DroppedBeyondHorizon

	p.logger.InfoContext(ctx, "rows cleaned",
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("dropped_unparseable", stats.DroppedUnparseable),
		slog.Int("dropped_beyond_horizon", stats.DroppedBeyondHorizon),
		slog.Int("kept", len(records)))

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if err := p.writer.Save(ctx, records); err != nil {
		p.logger.ErrorContext(ctx, "failed to write artifact",
			slog.String("path", p.writer.Path()),
			slog.String("error", err.Error()))
		return report, err
	}
	report.RowsWritten = len(records)

	p.logger.InfoContext(ctx, "artifact written",
		slog.String("path", p.writer.Path()),
		slog.Int("rows_written", report.RowsWritten))

	return report, nil
}
