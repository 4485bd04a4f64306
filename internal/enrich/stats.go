package enrich

import (
	"fmt"
	"time"
)

// FieldStats counts outcomes for one target field across a run.
type FieldStats struct {
	Candidates      int `json:"candidates"`
	Resolved        int `json:"resolved"`
	Unresolved      int `json:"unresolved"`
	AlreadyComplete int `json:"already_complete"`
}

// String formats the stats as "resolved/candidates resolved".
func (f FieldStats) String() string {
	return fmt.Sprintf("%d/%d resolved", f.Resolved, f.Candidates)
}

// Summary is the aggregate report of one pipeline run. A fresh Summary is
// produced per run; nothing is shared across runs.
type Summary struct {
	RunID   string        `json:"run_id"`
	County  FieldStats    `json:"county"`
	Owner   FieldStats    `json:"owner"`
	Rows    int           `json:"rows"`
	Elapsed time.Duration `json:"elapsed"`
}
