package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Região Geográfica", "regiao_geografica"},
		{"Data do Fato", "data_do_fato"},
		{"NATUREZA", "natureza"},
		{"Município", "municipio"},
		{"já_normalizado", "ja_normalizado"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColumn(tt.in))
		})
	}
}

func TestNormalizeColumnsIsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"Região Geográfica", "Data do Fato", "Natureza"},
		{"  Espaço Duplo  ", "ÇÃÕ", "a b c"},
		{"日本 語", "naïve café", "MIXED Case"},
	}
	for _, in := range inputs {
		once := NormalizeColumns(in)
		assert.Equal(t, once, NormalizeColumns(once))
		assert.Len(t, once, len(in))
	}
}

func TestRenameAliases(t *testing.T) {
	got := RenameAliases([]string{"regiao_geografica", "data_do_fato", "natureza"})
	assert.Equal(t, []string{"regiao_geografica", "date", "natureza"}, got)

	got = RenameAliases(NormalizeColumns([]string{"Data", "Natureza", "Região Geográfica"}))
	assert.Equal(t, []string{"date", "natureza", "regiao_geografica"}, got)
}

func TestColumnIndexFirstOccurrenceWins(t *testing.T) {
	idx := columnIndex([]string{"date", "natureza", "date"})
	assert.Equal(t, 0, idx["date"])
	assert.Equal(t, 1, idx["natureza"])
}
