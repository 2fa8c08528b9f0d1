package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thamirestcrl/eqc-teste/internal/app"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

func newPrepareCmd(opts *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Clean the source workbook into the dataset the dashboard reads",
		Long: `Reads the configured sheet of the source workbook, normalizes column
names, strips the boilerplate phrase from the crime category, drops rows whose
date cannot be parsed or falls after the horizon year, and writes the
region, category and year columns to the artifact file.

Any previous artifact is replaced only when the whole run succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}

			report, err := app.Prepare(cmd.Context(), cfg, logger)
			if err != nil {
				if report != nil && len(report.ColumnsFound) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "columns found: %s\n", strings.Join(report.ColumnsFound, ", "))
				}
				logger.Error("preparation failed", slog.String("error", err.Error()))
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the preparation report as JSON")
	return cmd
}

func printReport(w io.Writer, r *domain.PreparationReport) {
	fmt.Fprintf(w, "source:                 %s (sheet %s)\n", r.SourceFile, r.Sheet)
	fmt.Fprintf(w, "rows read:              %d\n", r.RowsRead)
	fmt.Fprintf(w, "dropped (bad date):     %d\n", r.DroppedUnparseable)
	fmt.Fprintf(w, "dropped (after %d):   %d\n", r.HorizonYear, r.DroppedBeyondHorizon)
	fmt.Fprintf(w, "rows written:           %d\n", r.RowsWritten)
	fmt.Fprintf(w, "artifact:               %s\n", r.ArtifactFile)
	fmt.Fprintf(w, "took:                   %s\n", r.Duration.Round(time.Millisecond))
}
