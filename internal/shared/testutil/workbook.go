package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// FixtureSheet is the sheet name the source workbook uses
const FixtureSheet = "Plan1"

// FixtureHeader mirrors the source workbook's header, accents included
var FixtureHeader = []any{"Região Geográfica", "Município", "Data do Fato", "Natureza"}

// FixtureRows is a five-row sample across two regions, two categories and
// the years 2020 and 2021. One row carries an unparseable date. Dates are a
// mix of native date cells and day-first text.
func FixtureRows() [][]any {
	return [][]any{
		{"SERTAO", "PETROLINA", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), "AMEACA POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"},
		{"SERTAO", "SALGUEIRO", "12/07/2021", "AMEACA POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"},
		{"CAPITAL", "RECIFE", time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), "LESAO CORPORAL POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"},
		{"CAPITAL", "RECIFE", "sem data", "AMEACA POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"},
		{"CAPITAL", "RECIFE", time.Date(2020, 11, 30, 0, 0, 0, 0, time.UTC), "AMEACA POR VIOLÊNCIA DOMÉSTICA/FAMILIAR"},
	}
}

// FixtureRecords are the cleaned records FixtureRows prepare into, in
// source order.
func FixtureRecords() []domain.Record {
	return []domain.Record{
		{Year: 2020, OffenseCategory: "AMEACA", Region: "SERTAO"},
		{Year: 2021, OffenseCategory: "AMEACA", Region: "SERTAO"},
		{Year: 2021, OffenseCategory: "LESAO CORPORAL", Region: "CAPITAL"},
		{Year: 2020, OffenseCategory: "AMEACA", Region: "CAPITAL"},
	}
}

// WriteWorkbook saves a workbook with one sheet holding header and rows
// into dir and returns its path.
func WriteWorkbook(t *testing.T, dir, name, sheet string, header []any, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteFixtureWorkbook writes the standard five-row fixture into dir
func WriteFixtureWorkbook(t *testing.T, dir string) string {
	t.Helper()
	return WriteWorkbook(t, dir, "fixture.xlsx", FixtureSheet, FixtureHeader, FixtureRows())
}
