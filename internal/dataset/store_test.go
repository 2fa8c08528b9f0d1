package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{Year: 2020, OffenseCategory: "AMEACA", Region: "SERTAO"},
		{Year: 2021, OffenseCategory: "LESAO CORPORAL, LEVE", Region: "CAPITAL"},
		{Year: 2019, OffenseCategory: "", Region: "AGRESTE"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dados_app.csv")
	store := NewStore(path, nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecords()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(raw) > 0)
	assert.Contains(t, string(raw), "year,offense_category,region")

	ds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), ds.Records())
	assert.Equal(t, path, ds.Source())
	assert.Equal(t, []string{"AGRESTE", "CAPITAL", "SERTAO"}, ds.Regions())
}

func TestStoreSaveReplacesInFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados_app.csv")
	store := NewStore(path, nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecords()))
	require.NoError(t, store.Save(ctx, sampleRecords()[:1]))

	ds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestStoreEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados_app.csv")
	store := NewStore(path, nil)

	require.NoError(t, store.Save(context.Background(), nil))

	ds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Empty(t, ds.Categories())
}

func TestStoreLoadMissingArtifact(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.csv"), nil)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
	assert.Contains(t, err.Error(), "eqc prepare")
}

func TestStoreLoadSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados_app.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,natureza,region\n2020,AMEACA,SERTAO\n"), 0o644))

	_, err := NewStore(path, nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMissingColumn))
	assert.Contains(t, err.Error(), "offense_category")
}

func TestStoreLoadHeaderOnlySchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados_app.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,region\n"), 0o644))

	_, err := NewStore(path, nil).Load(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrMissingColumn))
}

func TestStoreLoadCorruptYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados_app.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,offense_category,region\nabc,AMEACA,SERTAO\n"), 0o644))

	_, err := NewStore(path, nil).Load(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrParsing))
}
