package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/shared/testutil"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Save(ctx context.Context, records []domain.Record) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockWriter) Path() string { return "/data/dados_app.csv" }

func newTestPipeline(t *testing.T, source string, w ArtifactWriter) (*Pipeline, *testutil.CaptureHandler) {
	logger, logs := testutil.NewTestLogger(t)
	paths := &config.Paths{SourceFile: source, Sheet: testutil.FixtureSheet}
	analysis := config.Default().Analysis
	return NewPipeline(paths, analysis, w, nil, logger), logs
}

func TestPipelineRunFixture(t *testing.T) {
	source := testutil.WriteFixtureWorkbook(t, t.TempDir())

	w := &mockWriter{}
	w.On("Save", mock.Anything, testutil.FixtureRecords()).Return(nil).Once()

	p, _ := newTestPipeline(t, source, w)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	w.AssertExpectations(t)
	assert.Equal(t, 5, report.RowsRead)
	assert.Equal(t, 1, report.DroppedUnparseable)
	assert.Equal(t, 0, report.DroppedBeyondHorizon)
	assert.Equal(t, 4, report.RowsWritten)
	assert.Equal(t, 2024, report.HorizonYear)
	assert.Equal(t, "/data/dados_app.csv", report.ArtifactFile)
	assert.Contains(t, report.ColumnsFound, "date")
}

func TestPipelineMissingColumnWritesNothing(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteWorkbook(t, dir, "bad.xlsx", testutil.FixtureSheet,
		[]any{"Regiao Geografca", "Data do Fato", "Natureza"},
		[][]any{{"SERTAO", "12/07/2021", "AMEACA"}})

	w := &mockWriter{}
	p, logs := newTestPipeline(t, source, w)

	report, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMissingColumn))
	w.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	assert.Equal(t, []string{"regiao_geografca", "date", "natureza"}, report.ColumnsFound)
	rec, ok := logs.Find(slog.LevelWarn, "lacks a required column")
	require.True(t, ok)
	assert.Equal(t, "preparation", rec.Attrs["component"])
}

func TestPipelineMissingSource(t *testing.T) {
	w := &mockWriter{}
	p, _ := newTestPipeline(t, filepath.Join(t.TempDir(), "none.xlsx"), w)

	_, err := p.Run(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrMissingSourceFile))
	w.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPipelineSaveFailureSurfacesCause(t *testing.T) {
	source := testutil.WriteFixtureWorkbook(t, t.TempDir())
	cause := errors.New("disk full")

	w := &mockWriter{}
	w.On("Save", mock.Anything, mock.Anything).Return(cause)

	p, _ := newTestPipeline(t, source, w)
	report, err := p.Run(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, report.RowsWritten)
}
