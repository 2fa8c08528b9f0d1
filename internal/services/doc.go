// Package services implements the dashboard's business layer between the
// HTTP handlers and the dataset, analytics, charts and exporter packages.
//
// # Architecture
//
// Services follow these principles:
//
//  1. Interface-driven dependencies (DatasetProvider) for testability
//  2. Context propagation for cancellation and tracing
//  3. No per-session state: every call carries its FilterSelection
//
// DashboardService recomputes every view from the shared dataset for each
// call. Charts and exports are rendered into memory first so a failure never
// leaves a half-written response.
//
// HealthService reports liveness and whether the cleaned dataset is loaded.
package services
