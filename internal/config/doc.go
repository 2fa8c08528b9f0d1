// Package config provides centralized configuration management for the
// dashboard and its preparation step.
//
// # Configuration Sources
//
// Configuration is layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. YAML configuration file (explicit path, EQC_CONFIG_FILE, or config.yaml)
//  3. Environment variables with the EQC_ prefix
//
// # Environment Variables
//
//	EQC_SERVER_PORT=8501
//	EQC_PATHS_SOURCE_FILE=data/microdados.xlsx
//	EQC_PATHS_ARTIFACT_FILE=data/dados_app.csv
//	EQC_ANALYSIS_HORIZON_YEAR=2024
//	EQC_ANALYSIS_REPORTING_RATE=0.4
//	EQC_LOGGING_LEVEL=debug
//
// Relative paths are resolved against Paths.BaseDir (the working directory
// by default). See Paths for the resolved, absolute view.
package config
