package domain

import "time"

// PreparationReport summarizes one run of the data preparation pipeline.
type PreparationReport struct {
	SourceFile           string        `json:"source_file"`
	Sheet                string        `json:"sheet"`
	ArtifactFile         string        `json:"artifact_file"`
	ColumnsFound         []string      `json:"columns_found"`
	RowsRead             int           `json:"rows_read"`
	DroppedUnparseable   int           `json:"dropped_unparseable"`
	DroppedBeyondHorizon int           `json:"dropped_beyond_horizon"`
	RowsWritten          int           `json:"rows_written"`
	HorizonYear          int           `json:"horizon_year"`
	Duration             time.Duration `json:"duration"`
}
