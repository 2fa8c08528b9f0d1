package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	"github.com/thamirestcrl/eqc-teste/internal/dataprocessing"
	"github.com/thamirestcrl/eqc-teste/internal/dataset"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// Prepare runs the preparation pipeline once and writes the artifact. The
// report is returned even on failure so callers can show what was found.
// Every log line of one run carries the same trace ID.
func Prepare(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*domain.PreparationReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	store := dataset.NewStore(paths.ArtifactFile, logger)
	// no scrape endpoint outlives a CLI run; counts are logged instead
	pipeline := dataprocessing.NewPipeline(paths, cfg.Analysis, store,
		infrastructure.NoopBusinessMetrics(), logger)
	return pipeline.Run(ctx)
}
