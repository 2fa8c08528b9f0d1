// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Resolve paths and create the data and log directories
//	2. Initialize OpenTelemetry and the business instruments
//	3. Create the artifact store and the shared dataset loader
//	4. Create the dashboard and health services
//	5. Build the chi router with the middleware chain and handlers
//	6. Configure the HTTP server
//
// Middleware order is RequestID, RealIP, OTel, StructuredLogger, Recoverer,
// SecurityHeaders, RateLimiter, Compress.
//
// # Preparation
//
// Prepare runs the one-shot preparation step used by `eqc prepare`: read the
// source workbook, clean it and write the artifact the server loads.
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout and flushes telemetry. Errors are returned
// to the caller; the package never calls os.Exit.
package app
