package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/parcel-cli/internal/record"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// CleanPhone strips everything but digits from a phone number.
func CleanPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TitleAddress trims and title-cases a street address ("123 MAIN ST" ->
// "123 Main St").
func TitleAddress(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizePhones rewrites every cell of the phone column in place and
// returns how many cells changed. A missing column is a no-op.
func NormalizePhones(s *record.Store, column string) int {
	return rewriteColumn(s, column, CleanPhone)
}

// NormalizeAddresses title-cases every cell of the street column in place
// and returns how many cells changed.
func NormalizeAddresses(s *record.Store, column string) int {
	return rewriteColumn(s, column, TitleAddress)
}

// FillMissing replaces missing cells of a column with a default value and
// returns how many cells were filled.
func FillMissing(s *record.Store, column, sentinel, def string) int {
	return rewriteColumn(s, column, func(v string) string {
		if record.Missing(v, sentinel) {
			return def
		}
		return v
	})
}

func rewriteColumn(s *record.Store, column string, fn func(string) string) int {
	if !s.HasColumn(column) {
		return 0
	}
	changed := 0
	for i := range s.Len() {
		old := s.Value(i, column)
		if updated := fn(old); updated != old {
			_ = s.Set(i, column, updated) // column exists, row in range
			changed++
		}
	}
	return changed
}
