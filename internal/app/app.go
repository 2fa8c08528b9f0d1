package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/thamirestcrl/eqc-teste/internal/analytics"
	"github.com/thamirestcrl/eqc-teste/internal/config"
	"github.com/thamirestcrl/eqc-teste/internal/dataset"
	apierrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/exporter"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	customMiddleware "github.com/thamirestcrl/eqc-teste/internal/middleware"
	"github.com/thamirestcrl/eqc-teste/internal/services"
	handlers "github.com/thamirestcrl/eqc-teste/internal/transport/http"
	"github.com/thamirestcrl/eqc-teste/internal/validation"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Store         *dataset.Store
	Loader        *dataset.Loader
	Dashboard     *services.DashboardService
	HealthService *services.HealthService
	Router        *chi.Mux
	Server        *http.Server
}

// NewApplication creates the application with the global logger
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return New(cfg, logger)
}

// New creates the application using logger for every component
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppConstants.AppName),
		slog.String("version", config.AppConstants.AppVersion))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(cfg.Metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	a.initializeServices()
	if err := a.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	a.createServer()

	return a, nil
}

func (a *Application) initializeServices() {
	a.Store = dataset.NewStore(a.Paths.ArtifactFile, a.Logger)
	a.Loader = dataset.NewLoader(a.Store, a.Metrics, a.Logger)
	a.Dashboard = services.NewDashboardService(a.Loader,
		analytics.OptionsFromConfig(a.Config.Analysis), a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(config.AppConstants.AppVersion,
		a.Paths.ArtifactFile, a.Loader, a.Logger)
}

func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	validator := customMiddleware.NewQueryValidator()

	// Order: RequestID, RealIP, OTel, Logger, Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(errorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			errorHandler,
			a.Logger,
		).Handler)
	}
	r.Use(customMiddleware.Compress(5))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	page, err := handlers.NewPageHandler(a.Dashboard, validator, handlers.PageOptions{
		ChartFormat:    "svg",
		SummaryHeaders: exporter.SummaryHeaders,
		HorizonYear:    a.Config.Analysis.HorizonYear,
	}, a.Logger, errorHandler)
	if err != nil {
		return fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	r.Get("/", page.ServeDashboard)

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, validator, a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(chimw.Timeout(a.Config.Server.WriteTimeout))

		r.Get("/health", healthHandler.HealthCheck)
		r.Mount("/", dashboardHandler.Routes())
	})

	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, errorHandler))

	a.Router = r
	return nil
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server in the background and warms the dataset
// cache. A server failure cancels ctx through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppConstants.AppName),
		slog.String("version", config.AppConstants.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	go a.warmDataset(ctx)

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// warmDataset loads the artifact once so the first page view is fast. A
// missing artifact is not fatal; the dashboard explains it until a reload.
func (a *Application) warmDataset(ctx context.Context) {
	ds, err := a.Loader.Dataset(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "Dataset not loaded at startup",
			slog.String("artifact", a.Paths.ArtifactFile),
			slog.String("error", err.Error()))
		return
	}
	a.Logger.InfoContext(ctx, "Dataset loaded at startup",
		slog.Int("records", ds.Len()))
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Server stopped unexpectedly")
	}

	// The run context may already be cancelled; shutdown gets its own.
	return a.Stop(context.Background())
}

// performStartupHealthCheck reports missing inputs and unwritable
// directories. Nothing here stops the server from starting.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string

	files := validation.NewFileValidator(a.Logger)

	if err := files.ValidateOutputDirectory(filepath.Dir(a.Paths.ArtifactFile)); err != nil {
		warnings = append(warnings, err.Error())
	}

	if _, err := os.Stat(a.Paths.ArtifactFile); err != nil {
		warnings = append(warnings, fmt.Sprintf("cleaned dataset not found at %s; run `eqc prepare`", a.Paths.ArtifactFile))
	}
	if _, err := os.Stat(a.Paths.SourceFile); err != nil {
		a.Logger.InfoContext(ctx, "Source workbook not found",
			slog.String("path", a.Paths.SourceFile))
	} else if err := files.ValidateWorkbook(a.Paths.SourceFile); err != nil {
		warnings = append(warnings, err.Error())
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
