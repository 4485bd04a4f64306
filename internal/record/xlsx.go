package record

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// LoadXLSX reads the first sheet of an XLSX workbook into a Store. The
// first row is the header.
func LoadXLSX(path string) (*Store, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "record: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("record: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("record: xlsx sheet is empty")
	}

	header := rowToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	return New(header, rows)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
