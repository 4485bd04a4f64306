package deeds

import "context"

// SiteLookup binds a shared Session to one county's Site. It is the
// per-county lookup strategy registered with the enrichment registry.
type SiteLookup struct {
	session *Session
	site    Site
}

// NewSiteLookup creates a lookup strategy for one county site.
func NewSiteLookup(session *Session, site Site) *SiteLookup {
	return &SiteLookup{session: session, site: site}
}

// County returns the county this lookup covers.
func (l *SiteLookup) County() string {
	return l.site.County
}

// LookupOwner runs the site search through the shared session.
func (l *SiteLookup) LookupOwner(ctx context.Context, street, city string) (string, error) {
	return l.session.LookupOwner(ctx, l.site, street, city)
}
