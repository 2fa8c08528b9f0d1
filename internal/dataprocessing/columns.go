package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonical column names after normalization and alias renaming
const (
	ColumnDate     = "date"
	ColumnNatureza = "natureza"
	ColumnRegion   = "regiao_geografica"
)

// columnAliases maps normalized source names onto canonical names
var columnAliases = map[string]string{
	"data_do_fato": ColumnDate,
	"data":         ColumnDate,
}

// RequiredColumns must all be present after RenameAliases
var RequiredColumns = []string{ColumnRegion, ColumnDate, ColumnNatureza}

// NormalizeColumn lower-cases name, replaces spaces with underscores and
// transliterates to ASCII by NFKD-decomposing and dropping every non-ASCII
// rune ("Região Geográfica" → "regiao_geografica").
func NormalizeColumn(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeColumns applies NormalizeColumn to every name, preserving order
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}

// RenameAliases replaces known aliases with their canonical name. Names are
// expected to be normalized already.
func RenameAliases(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if canonical, ok := columnAliases[n]; ok {
			out[i] = canonical
			continue
		}
		out[i] = n
	}
	return out
}

// columnIndex maps each name to its first position
func columnIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := idx[n]; !dup {
			idx[n] = i
		}
	}
	return idx
}
