package enrich

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/record"
)

// State is the pipeline's position in its run lifecycle.
type State int

// Pipeline states, in run order. Aborted is terminal and reachable from
// any state on an unrecoverable error.
const (
	StateIdle State = iota
	StateLoaded
	StateDetectingCounty
	StateEnrichingCounty
	StateDetectingOwner
	StateEnrichingOwner
	StatePersisted
	StateDone
	StateAborted
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StateDetectingCounty:
		return "detecting_county"
	case StateEnrichingCounty:
		return "enriching_county"
	case StateDetectingOwner:
		return "detecting_owner"
	case StateEnrichingOwner:
		return "enriching_owner"
	case StatePersisted:
		return "persisted"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ProgressFunc is invoked after each per-record enrichment attempt. The
// pipeline never depends on its behavior; by default a panicking callback
// is recovered and logged, not fatal.
type ProgressFunc func(index, total int, outcome Outcome)

// SessionHandle is the scraping collaborator's lifecycle. The session is
// acquired once per run, before the first owner candidate, and released
// exactly once at run end on every exit path.
type SessionHandle interface {
	Open(ctx context.Context) error
	Close() error
}

// Pipeline orchestrates one enrichment run: load, detect and enrich
// counties, detect and enrich owners, persist, summarize. Records are
// processed strictly sequentially in stable row order; county enrichment
// for every row completes before any owner enrichment begins, because
// owner dispatch keys on the just-resolved county value.
type Pipeline struct {
	columns  record.Columns
	sentinel string
	county   *CountyEnricher
	owner    *OwnerEnricher

	session        SessionHandle
	progress       ProgressFunc
	strictProgress bool
	limit          int

	state State
}

// New creates a Pipeline. The owner enricher may be nil to skip the owner
// phase entirely.
func New(columns record.Columns, sentinel string, county *CountyEnricher, owner *OwnerEnricher) *Pipeline {
	return &Pipeline{
		columns:  columns,
		sentinel: sentinel,
		county:   county,
		owner:    owner,
		state:    StateIdle,
	}
}

// SetSession attaches the scraping collaborator session. Without one the
// owner phase still runs, against whatever strategies the registry holds.
func (p *Pipeline) SetSession(h SessionHandle) {
	p.session = h
}

// SetProgress attaches a per-record progress callback. With strict set,
// a panic in the callback aborts the run instead of being swallowed.
func (p *Pipeline) SetProgress(fn ProgressFunc, strict bool) {
	p.progress = fn
	p.strictProgress = strict
}

// SetLimit caps how many candidate rows each phase processes (0 = no cap).
func (p *Pipeline) SetLimit(n int) {
	p.limit = n
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the full pipeline for one input/output pair and returns the
// run summary. Per-record failures never abort the run; only startup,
// session-acquisition, and persistence errors do. A completed run always
// produces a best-effort output table even when most rows stay unresolved.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (summary *Summary, err error) {
	log := zap.L().With(zap.String("component", "enrich.pipeline"))
	start := time.Now()
	p.state = StateIdle

	summary = &Summary{RunID: uuid.NewString()}

	store, loadErr := record.Load(inputPath)
	if loadErr != nil {
		p.state = StateAborted
		return nil, loadErr
	}
	if reqErr := store.RequireColumns(p.columns.Street, p.columns.City, p.columns.State, p.columns.Zip); reqErr != nil {
		p.state = StateAborted
		return nil, reqErr
	}
	store.EnsureColumn(p.columns.County)
	store.EnsureColumn(p.columns.Owner)
	summary.Rows = store.Len()
	p.state = StateLoaded
	log.Info("table loaded", zap.String("input", inputPath), zap.Int("rows", store.Len()))

	// The session is opened lazily below; this guard releases it on every
	// exit path, abort included. Close failures are logged, never returned,
	// and never mask the run's own error.
	sessionOpen := false
	defer func() {
		if !sessionOpen {
			return
		}
		if closeErr := p.session.Close(); closeErr != nil {
			log.Warn("session close failed", zap.Error(closeErr))
		}
	}()

	// County phase.
	p.state = StateDetectingCounty
	countyRows := p.candidates(store, p.columns.County)
	summary.County.Candidates = len(countyRows)
	summary.County.AlreadyComplete = store.Len() - len(countyRows)

	p.state = StateEnrichingCounty
	for i, row := range countyRows {
		outcome := p.county.EnrichCounty(ctx, p.snapshot(store, row))
		if outcome.Resolved {
			if setErr := store.Set(row, p.columns.County, outcome.Value); setErr != nil {
				p.state = StateAborted
				return nil, setErr
			}
			summary.County.Resolved++
		} else {
			summary.County.Unresolved++
		}
		if cbErr := p.notify(i, len(countyRows), outcome); cbErr != nil {
			p.state = StateAborted
			return nil, cbErr
		}
	}
	log.Info("county phase complete", zap.String("stats", summary.County.String()))

	// Owner phase.
	p.state = StateDetectingOwner
	var ownerRows []int
	if p.owner != nil {
		ownerRows = p.candidates(store, p.columns.Owner)
	}
	summary.Owner.Candidates = len(ownerRows)
	summary.Owner.AlreadyComplete = store.Len() - len(ownerRows)

	if len(ownerRows) > 0 && p.session != nil {
		if openErr := p.session.Open(ctx); openErr != nil {
			p.state = StateAborted
			return nil, eris.Wrap(openErr, "pipeline: open scrape session")
		}
		sessionOpen = true
	}

	p.state = StateEnrichingOwner
	for i, row := range ownerRows {
		outcome := p.owner.EnrichOwner(ctx, p.snapshot(store, row))
		if outcome.Resolved {
			if setErr := store.Set(row, p.columns.Owner, outcome.Value); setErr != nil {
				p.state = StateAborted
				return nil, setErr
			}
			summary.Owner.Resolved++
		} else {
			summary.Owner.Unresolved++
		}
		if cbErr := p.notify(i, len(ownerRows), outcome); cbErr != nil {
			p.state = StateAborted
			return nil, cbErr
		}
	}
	if p.owner != nil {
		log.Info("owner phase complete", zap.String("stats", summary.Owner.String()))
	}

	// Persist.
	if writeErr := store.WriteCSV(outputPath); writeErr != nil {
		p.state = StateAborted
		return nil, writeErr
	}
	p.state = StatePersisted

	summary.Elapsed = time.Since(start)
	p.state = StateDone
	log.Info("run complete",
		zap.String("run_id", summary.RunID),
		zap.String("output", outputPath),
		zap.String("county", summary.County.String()),
		zap.String("owner", summary.Owner.String()),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// candidates collects the missing-field rows for one column, applying the
// run limit if set.
func (p *Pipeline) candidates(store *record.Store, column string) []int {
	rows := slices.Collect(store.MissingRows(column, p.sentinel))
	if p.limit > 0 && len(rows) > p.limit {
		rows = rows[:p.limit]
	}
	return rows
}

// snapshot builds the enricher view of one row.
func (p *Pipeline) snapshot(store *record.Store, row int) Record {
	return Record{
		Street: store.Value(row, p.columns.Street),
		City:   store.Value(row, p.columns.City),
		State:  store.Value(row, p.columns.State),
		Zip:    store.Value(row, p.columns.Zip),
		County: store.Value(row, p.columns.County),
	}
}

// notify invokes the progress callback, recovering panics. In strict mode
// the panic is surfaced as a fatal error instead.
func (p *Pipeline) notify(index, total int, outcome Outcome) (err error) {
	if p.progress == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			if p.strictProgress {
				err = eris.Errorf("pipeline: progress callback panicked: %v", r)
				return
			}
			zap.L().Warn("pipeline: progress callback panicked", zap.Any("panic", r))
		}
	}()
	p.progress(index, total, outcome)
	return nil
}
