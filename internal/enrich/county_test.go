package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func newCountyEnricher(client *fakeGeocoder) *CountyEnricher {
	return NewCountyEnricher(client, 0, time.Second)
}

func TestEnrichCounty_Resolved(t *testing.T) {
	gc := &fakeGeocoder{counties: map[string]string{"123 Peachtree St": "Fulton County"}}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{
		Street: "123 Peachtree St", City: "Atlanta", State: "GA", Zip: "30303",
	})
	assert.True(t, got.Resolved)
	assert.Equal(t, "Fulton County", got.Value)
}

func TestEnrichCounty_TrimsComponents(t *testing.T) {
	gc := &fakeGeocoder{counties: map[string]string{"123 Peachtree St": "Fulton County"}}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{Street: "  123 Peachtree St  "})
	assert.True(t, got.Resolved)
}

func TestEnrichCounty_NoMatch(t *testing.T) {
	gc := &fakeGeocoder{}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{Street: "1 Nowhere Ln", City: "Faketown"})
	assert.False(t, got.Resolved)
	assert.Contains(t, got.Reason, "no county match")
}

func TestEnrichCounty_ClientErrorCollapsesToUnresolved(t *testing.T) {
	gc := &fakeGeocoder{failWith: eris.New("connection refused")}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{Street: "123 Main St"})
	assert.False(t, got.Resolved)
	assert.Contains(t, got.Reason, "connection refused")
}

func TestEnrichCounty_EmptyAddressSkipsCollaborator(t *testing.T) {
	gc := &fakeGeocoder{}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{Street: "  ", City: "\t"})
	assert.False(t, got.Resolved)
	assert.Contains(t, got.Reason, "no address components")
	assert.Zero(t, gc.callCount())
}

func TestEnrichCounty_PartialAddressTolerated(t *testing.T) {
	// Only a zip — still sent to the collaborator.
	gc := &fakeGeocoder{}
	e := newCountyEnricher(gc)

	got := e.EnrichCounty(context.Background(), Record{Zip: "30303"})
	assert.False(t, got.Resolved)
	assert.Equal(t, 1, gc.callCount())
}

func TestEnrichCounty_CancelledContext(t *testing.T) {
	gc := &fakeGeocoder{}
	e := NewCountyEnricher(gc, time.Hour, time.Second)

	// Exhaust the first free slot so the next wait would block.
	assert.False(t, e.EnrichCounty(context.Background(), Record{Street: "a"}).Resolved)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := e.EnrichCounty(ctx, Record{Street: "b"})
	assert.False(t, got.Resolved)
	assert.Contains(t, got.Reason, "wait cancelled")
}
