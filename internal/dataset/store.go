package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// Artifact column names
const (
	ColumnYear     = "year"
	ColumnCategory = "offense_category"
	ColumnRegion   = "region"
)

var artifactColumns = []string{ColumnYear, ColumnCategory, ColumnRegion}

// ErrArtifactNotFound is wrapped by Load when no artifact has been prepared
var ErrArtifactNotFound = errors.New("cleaned dataset not found; run `eqc prepare` first")

// Store reads and writes the cleaned artifact at a fixed path
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store for the artifact at path
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger.With(slog.String("component", "dataset_store"))}
}

// Path returns the artifact location
func (s *Store) Path() string { return s.path }

// Save replaces the artifact with records. The previous artifact, if any,
// stays intact until the new one is complete.
func (s *Store) Save(ctx context.Context, records []domain.Record) error {
	years := make([]int, len(records))
	categories := make([]string, len(records))
	regions := make([]string, len(records))
	for i, r := range records {
		years[i] = r.Year
		categories[i] = r.OffenseCategory
		regions[i] = r.Region
	}

	df := dataframe.New(
		series.New(years, series.Int, ColumnYear),
		series.New(categories, series.String, ColumnCategory),
		series.New(regions, series.String, ColumnRegion),
	)
	if df.Err != nil {
		return apperrors.NewStorageError("failed to build artifact frame", df.Err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewStorageError("failed to create artifact directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return apperrors.NewStorageError("failed to create temporary artifact", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := df.WriteCSV(w); err != nil {
		return apperrors.NewStorageError("failed to encode artifact", err)
	}
	if err := w.Flush(); err != nil {
		return apperrors.NewStorageError("failed to write artifact", err)
	}
	if err := tmp.Sync(); err != nil {
		return apperrors.NewStorageError("failed to sync artifact", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("failed to close artifact", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.NewStorageError("failed to move artifact into place", err)
	}
	committed = true

	s.logger.InfoContext(ctx, "artifact saved",
		slog.String("path", s.path),
		slog.Int("records", len(records)))
	return nil
}

// Load reads the artifact into an immutable dataset
func (s *Store) Load(ctx context.Context) (*domain.Dataset, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewStorageError("no artifact at "+s.path, ErrArtifactNotFound).
				WithContext("path", s.path)
		}
		return nil, apperrors.NewStorageError("failed to read artifact", err).WithContext("path", s.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := decode(raw)
	if err != nil {
		return nil, err
	}

	ds := domain.NewDataset(records, s.path, time.Now())
	s.logger.InfoContext(ctx, "artifact loaded",
		slog.String("path", s.path),
		slog.Int("records", ds.Len()),
		slog.Int("regions", len(ds.Regions())),
		slog.Int("categories", len(ds.Categories())))
	return ds, nil
}

func decode(raw []byte) ([]domain.Record, error) {
	header, body := splitHeader(raw)
	if header == "" {
		return nil, apperrors.NewParsingError("artifact is empty", nil)
	}

	// gota refuses a frame without rows; a header-only artifact is a valid
	// empty dataset.
	if len(bytes.TrimSpace(body)) == 0 {
		names, err := csv.NewReader(strings.NewReader(header)).Read()
		if err != nil {
			return nil, apperrors.NewParsingError("failed to decode artifact header", err)
		}
		if err := checkColumns(names); err != nil {
			return nil, err
		}
		return []domain.Record{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
		dataframe.WithTypes(map[string]series.Type{
			ColumnYear:     series.Int,
			ColumnCategory: series.String,
			ColumnRegion:   series.String,
		}))
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to decode artifact", df.Err)
	}
	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	years, err := df.Col(ColumnYear).Int()
	if err != nil {
		return nil, apperrors.NewParsingError("artifact has a non-integer year", err)
	}
	categories := df.Col(ColumnCategory).Records()
	regions := df.Col(ColumnRegion).Records()

	records := make([]domain.Record, df.Nrow())
	for i := range records {
		records[i] = domain.Record{Year: years[i], OffenseCategory: categories[i], Region: regions[i]}
	}
	return records, nil
}

// splitHeader returns the first line of raw (without line terminator) and
// everything after it
func splitHeader(raw []byte) (string, []byte) {
	r := bufio.NewReader(bytes.NewReader(raw))
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", nil
	}
	rest, _ := io.ReadAll(r)
	return string(bytes.TrimRight([]byte(line), "\r\n")), rest
}

func checkColumns(names []string) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, c := range artifactColumns {
		if !present[c] {
			return apperrors.NewMissingColumnError(c, names)
		}
	}
	return nil
}
