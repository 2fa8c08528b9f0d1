// Command eqc prepares the domestic-violence occurrence dataset and serves
// the analysis dashboard.
//
//	eqc prepare   read the source workbook and write the cleaned dataset
//	eqc serve     start the HTTP dashboard over the cleaned dataset
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
)

// cliOptions holds the persistent flags shared by every subcommand
type cliOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "eqc",
		Short: "Gender-violence occurrence analysis for Pernambuco",
		Long: `eqc turns the SDS-PE domestic violence workbook into a cleaned dataset
and serves an analysis dashboard over it.

Run "eqc prepare" whenever the source workbook changes, then "eqc serve".`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"path to a YAML config file (defaults to $"+config.ConfigFileEnv+" or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"override the configured log level (debug, info, warn, error)")

	root.AddCommand(newPrepareCmd(opts), newServeCmd(opts), newVersionCmd())
	return root
}

// loadConfig loads configuration and applies flag overrides
func (o *cliOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// commandLogger builds a logger writing console output to cmd's stderr
func commandLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				config.AppConstants.AppName, config.AppConstants.AppVersion)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
