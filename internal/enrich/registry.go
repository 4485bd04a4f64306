package enrich

import (
	"context"
	"strings"
)

// OwnerLookup is the per-county owner lookup strategy. New counties
// register a new strategy instance; nothing subclasses anything.
type OwnerLookup interface {
	// County returns the county name this strategy covers.
	County() string

	// LookupOwner searches the county's property-record site for street+city
	// and returns the recorded owner name.
	LookupOwner(ctx context.Context, street, city string) (string, error)
}

// Registry maps county names to their owner lookup strategies. Keys are
// normalized (lowercased, trimmed, inner whitespace collapsed) so "Fulton
// County", "fulton county", and " FULTON  COUNTY " all dispatch the same.
type Registry struct {
	lookups map[string]OwnerLookup
	order   []string // insertion order for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		lookups: make(map[string]OwnerLookup),
	}
}

// Register adds a lookup strategy, replacing any prior entry for the same
// county.
func (r *Registry) Register(l OwnerLookup) {
	key := normalizeCounty(l.County())
	if _, exists := r.lookups[key]; !exists {
		r.order = append(r.order, key)
	}
	r.lookups[key] = l
}

// Lookup returns the strategy for a county, if one is registered.
func (r *Registry) Lookup(county string) (OwnerLookup, bool) {
	l, ok := r.lookups[normalizeCounty(county)]
	return l, ok
}

// Counties returns the registered county names in registration order.
func (r *Registry) Counties() []string {
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.lookups[key].County())
	}
	return out
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	return len(r.lookups)
}

// normalizeCounty produces the registry key for a county name.
func normalizeCounty(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
