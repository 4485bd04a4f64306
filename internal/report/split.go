package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-cli/internal/record"
)

// SplitByCounty writes one CSV per county into outDir and returns the
// created file paths in first-seen county order. Rows with a missing
// county value are skipped.
func SplitByCounty(s *record.Store, countyColumn, sentinel, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, eris.Wrap(err, "report: create output dir")
	}

	groups := make(map[string][][]string)
	var order []string

	for i := range s.Len() {
		county := strings.TrimSpace(s.Value(i, countyColumn))
		if record.Missing(county, sentinel) {
			continue
		}
		if _, seen := groups[county]; !seen {
			order = append(order, county)
		}
		groups[county] = append(groups[county], s.Row(i))
	}

	header := s.Header()
	var created []string
	for _, county := range order {
		sub, err := record.New(header, groups[county])
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, strings.ReplaceAll(county, " ", "_")+".csv")
		if err := sub.WriteCSV(path); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	return created, nil
}
