package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	apierrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/infrastructure"
	"github.com/thamirestcrl/eqc-teste/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.BaseDir = dir
	cfg.Paths.SourceFile = "fixture.xlsx"
	cfg.Paths.Sheet = testutil.FixtureSheet
	cfg.Server.Port = 0
	return cfg
}

func prepared(t *testing.T, cfg *config.Config) {
	t.Helper()
	testutil.WriteFixtureWorkbook(t, cfg.Paths.BaseDir)
	logger, _ := testutil.NewTestLogger(t)

	report, err := Prepare(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Equal(t, len(testutil.FixtureRecords()), report.RowsWritten)
}

func serve(t *testing.T, a *Application, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *testutil.CaptureHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	a, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.OTelProviders.Shutdown(context.Background())
	})
	return a, logs
}

func TestPrepare(t *testing.T) {
	cfg := testConfig(t)
	testutil.WriteFixtureWorkbook(t, cfg.Paths.BaseDir)
	logger, _ := testutil.NewTestLogger(t)

	report, err := Prepare(context.Background(), cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, 5, report.RowsRead)
	assert.Equal(t, 1, report.DroppedUnparseable)
	assert.Equal(t, 0, report.DroppedBeyondHorizon)
	assert.Equal(t, 4, report.RowsWritten)
	assert.Equal(t, filepath.Join(cfg.Paths.BaseDir, config.DefaultArtifactFile), report.ArtifactFile)
	assert.FileExists(t, report.ArtifactFile)
}

func TestPrepare_TagsLogsWithTraceID(t *testing.T) {
	cfg := testConfig(t)
	testutil.WriteFixtureWorkbook(t, cfg.Paths.BaseDir)

	var buf bytes.Buffer
	logger, err := infrastructure.NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &buf)
	require.NoError(t, err)

	_, err = Prepare(context.Background(), cfg, logger)
	require.NoError(t, err)

	var ids []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if json.Unmarshal(line, &entry) != nil {
			continue
		}
		if id, ok := entry["trace_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	require.NotEmpty(t, ids)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestPrepare_MissingSource(t *testing.T) {
	cfg := testConfig(t)
	logger, _ := testutil.NewTestLogger(t)

	_, err := Prepare(context.Background(), cfg, logger)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrMissingSourceFile)
	assert.NoFileExists(t, filepath.Join(cfg.Paths.BaseDir, config.DefaultArtifactFile))
}

func TestApplication_ServesPreparedDataset(t *testing.T) {
	cfg := testConfig(t)
	prepared(t, cfg)
	a, _ := newTestApp(t, cfg)

	t.Run("options", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/api/options")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.EqualValues(t, 4, body["record_count"])
		assert.Equal(t, []interface{}{"Todas", "CAPITAL", "SERTAO"}, body["regions"])
		assert.Equal(t, "AMEACA", body["default_category"])
	})

	t.Run("views filtered by region", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/api/views?region=SERTAO")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			RecordCount  int `json:"record_count"`
			TopFrequency []struct {
				Category string `json:"category"`
				Count    int    `json:"count"`
			} `json:"top_frequency"`
			Regions []struct {
				Region string `json:"region"`
				Count  int    `json:"count"`
			} `json:"regions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.RecordCount)
		require.Len(t, body.TopFrequency, 1)
		assert.Equal(t, "AMEACA", body.TopFrequency[0].Category)
		assert.Equal(t, 2, body.TopFrequency[0].Count)
		// Regional frequency ignores the region filter.
		assert.Len(t, body.Regions, 2)
	})

	t.Run("chart", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/api/charts/top-frequency.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
	})

	t.Run("summary export", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/api/export/summary.csv")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "AMEACA")
	})

	t.Run("page", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/?region=CAPITAL")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Frequência Regional")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("health", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/api/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/metrics")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(t, a, http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestApplication_WithoutArtifact(t *testing.T) {
	cfg := testConfig(t)
	a, _ := newTestApp(t, cfg)

	rec := serve(t, a, http.MethodGet, "/api/options")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, a, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	// Preparing afterwards and reloading makes the dashboard available.
	prepared(t, cfg)
	rec = serve(t, a, http.MethodPost, "/api/dataset/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"record_count":4`)

	rec = serve(t, a, http.MethodGet, "/api/options")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplication_StartupHealthCheck(t *testing.T) {
	cfg := testConfig(t)
	a, logs := newTestApp(t, cfg)

	err := a.performStartupHealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eqc prepare")

	_, found := logs.Find(slog.LevelInfo, "Source workbook not found")
	assert.True(t, found)
}

func TestApplication_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	a, _ := newTestApp(t, cfg)

	rec := serve(t, a, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
