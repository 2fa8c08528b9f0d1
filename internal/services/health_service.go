package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// DatasetStatus reports whether the cleaned dataset is usable
type DatasetStatus interface {
	Loaded() bool
}

// HealthService provides health check functionality
type HealthService struct {
	version      string
	artifactPath string
	dataset      DatasetStatus
	startTime    time.Time
	logger       *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service
func NewHealthService(version, artifactPath string, dataset DatasetStatus, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:      version,
		artifactPath: artifactPath,
		dataset:      dataset,
		startTime:    time.Now(),
		logger:       logger,
	}
}

// HealthCheck returns liveness plus dataset readiness. The process is
// "degraded" when no artifact has been prepared yet.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Services: map[string]ServiceHealth{
			"dataset": hs.checkDataset(),
		},
	}

	if status.Services["dataset"].Status == "unavailable" {
		status.Status = "degraded"
	}

	hs.logger.DebugContext(ctx, "health check completed", slog.String("status", status.Status))
	return status
}

func (hs *HealthService) checkDataset() ServiceHealth {
	if hs.dataset != nil && hs.dataset.Loaded() {
		return ServiceHealth{Status: "ready"}
	}
	if _, err := os.Stat(hs.artifactPath); err != nil {
		return ServiceHealth{Status: "unavailable", Message: "artifact missing; run `eqc prepare`"}
	}
	return ServiceHealth{Status: "ready", Message: "artifact present, loads on first request"}
}
