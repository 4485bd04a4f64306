// Package record holds the in-memory property-records table: loading,
// column access, and missing-field detection.
package record

import (
	"iter"
	"strings"

	"github.com/rotisserie/eris"
)

// Columns maps logical address fields to table column names.
type Columns struct {
	Street string
	City   string
	State  string
	Zip    string
	County string
	Owner  string
}

// DefaultColumns returns the standard column naming used by the export files.
func DefaultColumns() Columns {
	return Columns{
		Street: "StreetAddress",
		City:   "City",
		State:  "State",
		Zip:    "Zipcode",
		County: "CountyName",
		Owner:  "OwnerName",
	}
}

// Store is the working table: a header row plus raw string rows. Row
// position is record identity and is stable for the life of the store —
// rows are never reordered, deduplicated, or dropped. Columns outside the
// two target fields are passthrough and kept verbatim.
type Store struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// New builds a Store from a header and rows.
func New(header []string, rows [][]string) (*Store, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; dup {
			return nil, eris.Errorf("record: duplicate column %q", name)
		}
		index[name] = i
	}
	return &Store{header: header, rows: rows, index: index}, nil
}

// Len returns the number of data rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Header returns a copy of the header row.
func (s *Store) Header() []string {
	out := make([]string, len(s.header))
	copy(out, s.header)
	return out
}

// HasColumn reports whether the named column exists.
func (s *Store) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// EnsureColumn appends the named column with empty values if it is absent.
func (s *Store) EnsureColumn(name string) {
	if s.HasColumn(name) {
		return
	}
	s.index[name] = len(s.header)
	s.header = append(s.header, name)
}

// RequireColumns returns an error naming the first listed column that is
// absent from the table.
func (s *Store) RequireColumns(names ...string) error {
	for _, name := range names {
		if !s.HasColumn(name) {
			return eris.Errorf("record: required column %q not found", name)
		}
	}
	return nil
}

// Value returns the cell at (row, column). Rows shorter than the header are
// tolerated: cells past the row's end read as empty.
func (s *Store) Value(row int, column string) string {
	idx, ok := s.index[column]
	if !ok || row < 0 || row >= len(s.rows) {
		return ""
	}
	r := s.rows[row]
	if idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Set writes the cell at (row, column), padding short rows as needed.
func (s *Store) Set(row int, column, value string) error {
	idx, ok := s.index[column]
	if !ok {
		return eris.Errorf("record: unknown column %q", column)
	}
	if row < 0 || row >= len(s.rows) {
		return eris.Errorf("record: row %d out of range (have %d)", row, len(s.rows))
	}
	for len(s.rows[row]) <= idx {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][idx] = value
	return nil
}

// Row returns a copy of the raw row at the given position.
func (s *Store) Row(i int) []string {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	out := make([]string, len(s.rows[i]))
	copy(out, s.rows[i])
	return out
}

// Missing reports whether a field value counts as absent: empty or
// whitespace-only strings, and case-insensitive matches of the sentinel,
// are all treated identically to a missing cell. Any other non-empty string
// is present, even if it contains the sentinel as a substring.
func Missing(value, sentinel string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return true
	}
	return strings.EqualFold(v, strings.TrimSpace(sentinel))
}

// MissingRows yields the positions of rows whose column value is missing,
// in row order. The sequence is restartable and never mutates the store.
// An absent column means every row is missing that field.
func (s *Store) MissingRows(column, sentinel string) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range s.rows {
			if !Missing(s.Value(i, column), sentinel) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
