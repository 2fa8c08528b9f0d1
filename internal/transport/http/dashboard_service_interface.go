package http

import (
	"context"

	"github.com/thamirestcrl/eqc-teste/internal/charts"
	"github.com/thamirestcrl/eqc-teste/internal/services"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// DashboardService is the slice of the dashboard service the handlers use
type DashboardService interface {
	Options(ctx context.Context) (*services.DashboardOptions, error)
	Views(ctx context.Context, filter domain.FilterSelection) (*domain.Views, error)
	Chart(ctx context.Context, name domain.ViewName, filter domain.FilterSelection, format string) ([]byte, charts.Format, error)
	Summary(ctx context.Context, filter domain.FilterSelection, format services.ExportFormat) ([]byte, error)
	Reload(ctx context.Context) (*services.DashboardOptions, error)
}

// HealthService reports process and dataset health
type HealthService interface {
	HealthCheck(ctx context.Context) services.HealthStatus
}
