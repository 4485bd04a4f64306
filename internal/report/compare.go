package report

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-cli/internal/record"
)

// Comparison reports how many missing county cells an enrichment run filled
// between an original table and its updated counterpart.
type Comparison struct {
	OriginalMissing int    `json:"original_missing" yaml:"original_missing"`
	UpdatedMissing  int    `json:"updated_missing" yaml:"updated_missing"`
	RecordsUpdated  int    `json:"records_updated" yaml:"records_updated"`
	SuccessRate     string `json:"success_rate" yaml:"success_rate"`
}

// Compare counts missing county values in both tables using the same
// missingness predicate the pipeline uses.
func Compare(original, updated *record.Store, countyColumn, sentinel string) (*Comparison, error) {
	if original.Len() != updated.Len() {
		return nil, eris.Errorf("report: row count mismatch: original has %d, updated has %d",
			original.Len(), updated.Len())
	}

	c := &Comparison{}
	for i := range original.Len() {
		if record.Missing(original.Value(i, countyColumn), sentinel) {
			c.OriginalMissing++
		}
		if record.Missing(updated.Value(i, countyColumn), sentinel) {
			c.UpdatedMissing++
		}
	}

	c.RecordsUpdated = c.OriginalMissing - c.UpdatedMissing
	if c.OriginalMissing > 0 {
		c.SuccessRate = fmt.Sprintf("%.1f%%", float64(c.RecordsUpdated)/float64(c.OriginalMissing)*100)
	} else {
		c.SuccessRate = "n/a"
	}

	return c, nil
}
