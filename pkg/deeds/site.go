// Package deeds looks up recorded title owners on county property-record
// websites through a shared browser-automation session.
package deeds

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Site describes one county property-record site: where its search entry
// point lives and how to pull an owner name out of the result markup. The
// markup is not uniform across counties, so OwnerSelectors is an ordered
// list of extraction patterns; the first selector yielding non-empty text
// wins.
type Site struct {
	County         string   // county this site covers, e.g. "Fulton County"
	SearchURL      string   // search page entry point
	SearchInput    string   // CSS selector of the search field
	SubmitButton   string   // CSS selector of the submit control
	ResultLink     string   // CSS selector of the first result's detail link
	OwnerSelectors []string // detail-page selectors tried in order
}

// Validate checks that the site definition is complete enough to drive a
// lookup.
func (s Site) Validate() error {
	switch {
	case strings.TrimSpace(s.County) == "":
		return eris.New("deeds: site county is required")
	case strings.TrimSpace(s.SearchURL) == "":
		return eris.Errorf("deeds: %s: search url is required", s.County)
	case strings.TrimSpace(s.SearchInput) == "":
		return eris.Errorf("deeds: %s: search input selector is required", s.County)
	case strings.TrimSpace(s.SubmitButton) == "":
		return eris.Errorf("deeds: %s: submit selector is required", s.County)
	case strings.TrimSpace(s.ResultLink) == "":
		return eris.Errorf("deeds: %s: result link selector is required", s.County)
	case len(s.OwnerSelectors) == 0:
		return eris.Errorf("deeds: %s: at least one owner selector is required", s.County)
	}
	return nil
}

// FultonSite returns the site definition for the Fulton County, GA board of
// assessors property search.
func FultonSite(searchURL string) Site {
	return Site{
		County:       "Fulton County",
		SearchURL:    searchURL,
		SearchInput:  "#searchInput",
		SubmitButton: "#btnSearch",
		ResultLink:   "table.searchResults tbody tr:first-child a",
		OwnerSelectors: []string{
			"#ownerName",
			"table.parcelDetail tr.owner td.value",
			".owner-info .name",
		},
	}
}

// DekalbSite returns the site definition for the DeKalb County, GA property
// appraisal search.
func DekalbSite(searchURL string) Site {
	return Site{
		County:       "DeKalb County",
		SearchURL:    searchURL,
		SearchInput:  "input[name='searchText']",
		SubmitButton: "button[type='submit']",
		ResultLink:   ".results-list .result-row:first-child a",
		OwnerSelectors: []string{
			".owner-name",
			"#parcelOwner",
			"table#details tr:first-child td:nth-child(2)",
		},
	}
}

// searchQuery joins the street and city into the single search string the
// county sites expect. Empty components are skipped.
func searchQuery(street, city string) string {
	var parts []string
	for _, p := range []string{street, city} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
