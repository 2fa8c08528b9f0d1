// Package http implements the HTTP handlers of the dashboard.
//
// Handlers stay thin: they bind and validate the query, call the dashboard
// service and render the result. Errors are never written directly; they go
// through the shared ErrorHandler, which renders RFC 7807 problem details.
//
// # Routes
//
//	GET  /                              HTML dashboard
//	GET  /api/options                   selector lists and defaults
//	GET  /api/views                     every derived table for the filter
//	GET  /api/charts/{name}.{format}    one chart as png or svg
//	GET  /api/export/summary.{format}   under-reporting table as csv or xlsx
//	POST /api/dataset/reload            re-read the cleaned dataset
//	GET  /api/health                    liveness and dataset status
//	GET  /metrics                       Prometheus scrape endpoint
//
// The filter travels as the region and category query parameters on every
// request; nothing about the selection is kept server side.
package http
