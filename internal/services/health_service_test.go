package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatus bool

func (f fakeStatus) Loaded() bool { return bool(f) }

func TestHealthCheck(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "dados_app.csv")

	hs := NewHealthService("1.0.0", artifact, fakeStatus(false), nil)
	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unavailable", status.Services["dataset"].Status)
	assert.Equal(t, "1.0.0", status.Version)

	require.NoError(t, os.WriteFile(artifact, []byte("year,offense_category,region\n"), 0o644))
	status = hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)

	status = NewHealthService("1.0.0", artifact, fakeStatus(true), nil).HealthCheck(context.Background())
	assert.Equal(t, "ready", status.Services["dataset"].Status)
	assert.Contains(t, status.Runtime, "go_version")
}
