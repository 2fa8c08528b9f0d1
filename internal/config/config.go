package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	SourceFile   string `yaml:"source_file" envconfig:"SOURCE_FILE"`
	Sheet        string `yaml:"sheet" envconfig:"SHEET"`
	ArtifactFile string `yaml:"artifact_file" envconfig:"ARTIFACT_FILE"`
}

// AnalysisConfig holds the policy constants of the cleaning and
// aggregation steps.
type AnalysisConfig struct {
	HorizonYear       int     `yaml:"horizon_year" envconfig:"HORIZON_YEAR"`
	ReportingRate     float64 `yaml:"reporting_rate" envconfig:"REPORTING_RATE"`
	DefaultCategory   string  `yaml:"default_category" envconfig:"DEFAULT_CATEGORY"`
	BoilerplatePhrase string  `yaml:"boilerplate_phrase" envconfig:"BOILERPLATE_PHRASE"`
	TopFrequency      int     `yaml:"top_frequency" envconfig:"TOP_FREQUENCY"`
	TopAverage        int     `yaml:"top_average" envconfig:"TOP_AVERAGE"`
	TopSummary        int     `yaml:"top_summary" envconfig:"TOP_SUMMARY"`
	TopSeries         int     `yaml:"top_series" envconfig:"TOP_SERIES"`
}

// MetricsConfig selects the OpenTelemetry exporters
type MetricsConfig struct {
	Enabled       bool    `yaml:"enabled" envconfig:"ENABLED"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// Load builds the configuration from defaults, the YAML file and the
// environment. An empty configFile falls back to EQC_CONFIG_FILE and then
// to the well-known locations; a missing optional file is not an error.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	explicit := configFile != ""
	if !explicit {
		if env := os.Getenv(ConfigFileEnv); env != "" {
			configFile = env
			explicit = true
		} else {
			configFile = getConfigFilePath()
		}
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Only variables that are actually set override; nothing carries a
	// default tag so file values survive.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Analysis.ReportingRate <= 0 || c.Analysis.ReportingRate >= 1 {
		return fmt.Errorf("reporting rate must be in (0,1), got %v", c.Analysis.ReportingRate)
	}

	if c.Analysis.HorizonYear < 1900 || c.Analysis.HorizonYear > 9998 {
		return fmt.Errorf("invalid horizon year: %d", c.Analysis.HorizonYear)
	}

	for name, n := range map[string]int{
		"top_frequency": c.Analysis.TopFrequency,
		"top_average":   c.Analysis.TopAverage,
		"top_summary":   c.Analysis.TopSummary,
		"top_series":    c.Analysis.TopSeries,
	} {
		if n <= 0 {
			return fmt.Errorf("analysis.%s must be positive, got %d", name, n)
		}
	}

	if strings.TrimSpace(c.Paths.SourceFile) == "" {
		return fmt.Errorf("paths.source_file is required")
	}
	if strings.TrimSpace(c.Paths.ArtifactFile) == "" {
		return fmt.Errorf("paths.artifact_file is required")
	}
	if strings.TrimSpace(c.Paths.Sheet) == "" {
		return fmt.Errorf("paths.sheet is required")
	}

	// JSON is the only supported log format
	c.Logging.Format = "json"

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   100,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:      DefaultDataDir,
			LogsDir:      DefaultLogsDir,
			SourceFile:   DefaultSourceFile,
			Sheet:        DefaultSheet,
			ArtifactFile: DefaultArtifactFile,
		},
		Analysis: AnalysisConfig{
			HorizonYear:       DefaultHorizonYear,
			ReportingRate:     DefaultReportingRate,
			DefaultCategory:   DefaultCategory,
			BoilerplatePhrase: BoilerplatePhrase,
			TopFrequency:      DefaultTopFrequency,
			TopAverage:        DefaultTopAverage,
			TopSummary:        DefaultTopSummary,
			TopSeries:         DefaultTopSeries,
		},
		Metrics: MetricsConfig{
			Enabled:       true,
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
	}
}
