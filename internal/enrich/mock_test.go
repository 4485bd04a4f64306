package enrich

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-cli/pkg/geocode"
)

// fakeGeocoder implements geocode.Client with canned per-street results.
type fakeGeocoder struct {
	mu       sync.Mutex
	counties map[string]string // street -> county; absent street = no match
	failWith error             // returned for every call when set
	calls    []string          // streets, in call order
}

func (f *fakeGeocoder) County(_ context.Context, addr geocode.AddressInput) (*geocode.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, addr.Street)
	f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	county, ok := f.counties[addr.Street]
	if !ok {
		return &geocode.Result{Matched: false}, nil
	}
	return &geocode.Result{County: county, Matched: true}, nil
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeLookup implements OwnerLookup with canned per-street owners.
type fakeLookup struct {
	county string
	owners map[string]string // street -> owner; absent street = lookup error
	calls  []string
	events *[]string // optional shared event log for ordering assertions
}

func (f *fakeLookup) County() string { return f.county }

func (f *fakeLookup) LookupOwner(_ context.Context, street, _ string) (string, error) {
	f.calls = append(f.calls, street)
	if f.events != nil {
		*f.events = append(*f.events, "owner:"+street)
	}
	owner, ok := f.owners[street]
	if !ok {
		return "", eris.Errorf("no results for %q", street)
	}
	return owner, nil
}

// fakeSession implements SessionHandle and records lifecycle events.
type fakeSession struct {
	openErr    error
	openCalls  int
	closeCalls int
	events     *[]string
}

func (f *fakeSession) Open(context.Context) error {
	f.openCalls++
	if f.events != nil {
		*f.events = append(*f.events, "session:open")
	}
	return f.openErr
}

func (f *fakeSession) Close() error {
	f.closeCalls++
	if f.events != nil {
		*f.events = append(*f.events, "session:close")
	}
	return nil
}

// orderedGeocoder wraps fakeGeocoder and mirrors calls into a shared event
// log, for phase-ordering assertions.
type orderedGeocoder struct {
	inner  *fakeGeocoder
	events *[]string
}

func (o *orderedGeocoder) County(ctx context.Context, addr geocode.AddressInput) (*geocode.Result, error) {
	*o.events = append(*o.events, "county:"+addr.Street)
	return o.inner.County(ctx, addr)
}

func countPrefix(events []string, prefix string) int {
	n := 0
	for _, e := range events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}
