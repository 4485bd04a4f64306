// Package enrich implements the enrichment pipeline core: missing-field
// candidates are fed to per-field enrichers under rate limiting, results
// are merged back into the table, and a run summary is reported.
package enrich

// Outcome is the result of one enrichment attempt for one record: either a
// resolved non-empty value or an explicit unresolved marker. Failures never
// surface as errors past the enricher boundary; the reason is carried for
// logging only.
type Outcome struct {
	Resolved bool
	Value    string
	Reason   string
}

// Resolve returns a resolved outcome carrying the value.
func Resolve(value string) Outcome {
	return Outcome{Resolved: true, Value: value}
}

// Unresolve returns an unresolved outcome carrying the failure reason.
func Unresolve(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Record is the address view of one table row handed to the enrichers.
type Record struct {
	Street string
	City   string
	State  string
	Zip    string
	County string
}
