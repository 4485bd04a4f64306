package record

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Load reads a tabular file into a Store, dispatching on file extension:
// .xlsx files go through the XLSX reader, everything else is parsed as CSV.
func Load(path string) (*Store, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// LoadCSV reads a CSV file into a Store. The first row is the header.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "record: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("record: csv is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "record: read csv header")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "record: read csv row")
		}
		rows = append(rows, row)
	}

	return New(header, rows)
}

// WriteCSV writes the store to a CSV file, same schema and row order as
// loaded. Short rows are padded to header width so every output row has
// the full column set.
func (s *Store) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "record: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(s.header); err != nil {
		return eris.Wrap(err, "record: write csv header")
	}

	width := len(s.header)
	for i, row := range s.rows {
		out := row
		if len(row) < width {
			out = make([]string, width)
			copy(out, row)
		}
		if err := w.Write(out); err != nil {
			return eris.Wrapf(err, "record: write csv row %d", i)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "record: flush csv")
	}
	return nil
}
