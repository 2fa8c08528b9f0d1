package config

// Application constants
const (
	AppName    = "EQC Dashboard"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (EQC_SERVER_PORT, ...)
	EnvPrefix = "EQC"

	// ConfigFileEnv names the environment variable holding the YAML path
	ConfigFileEnv = "EQC_CONFIG_FILE"

	DefaultDataDir      = "data"
	DefaultLogsDir      = "logs"
	DefaultSourceFile   = "data/MICRODADOS_DE_VIOLÊNCIA_DOMÉSTICA_JAN_2015_A_SET_2025.xlsx"
	DefaultSheet        = "Plan1"
	DefaultArtifactFile = "data/dados_app.csv"

	// DefaultHorizonYear is the last calendar year considered complete
	DefaultHorizonYear = 2024
	// DefaultReportingRate is the assumed fraction of incidents that are
	// reported; it drives the under-reporting estimate only.
	DefaultReportingRate = 0.4
	DefaultCategory      = "AMEACA"
	BoilerplatePhrase    = "POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"

	DefaultTopFrequency = 20
	DefaultTopAverage   = 10
	DefaultTopSummary   = 10
	DefaultTopSeries    = 10
)

// AppConstants groups the identity strings shown in logs and the CLI
var AppConstants = struct {
	AppName    string
	AppVersion string
}{
	AppName:    AppName,
	AppVersion: AppVersion,
}
