// Package report analyzes property tables and formats dataset reports.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/parcel-cli/internal/record"
)

// Optional columns recognized by the analyzer when present.
const (
	propertyTypeColumn = "HomeType"
	priceColumn        = "Price"
)

// Count is one name/count pair in a ranked breakdown.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// PriceStats summarizes the numeric Price column when present.
type PriceStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Analysis is the dataset report for one property table.
type Analysis struct {
	TotalProperties int         `json:"total_properties" yaml:"total_properties"`
	MissingCounty   int         `json:"missing_county" yaml:"missing_county"`
	Counties        []Count     `json:"counties" yaml:"counties"`
	TopCities       []Count     `json:"top_cities" yaml:"top_cities"`
	TopZips         []Count     `json:"top_zips" yaml:"top_zips"`
	PropertyTypes   []Count     `json:"property_types,omitempty" yaml:"property_types,omitempty"`
	Price           *PriceStats `json:"price_stats,omitempty" yaml:"price_stats,omitempty"`
}

const topN = 10

// Analyze builds the dataset report: county/city/zip breakdowns, missing
// county count, and optional property-type and price statistics.
func Analyze(s *record.Store, cols record.Columns, sentinel string) *Analysis {
	a := &Analysis{TotalProperties: s.Len()}

	counties := make(map[string]int)
	cities := make(map[string]int)
	zips := make(map[string]int)
	types := make(map[string]int)
	var prices []float64

	hasTypes := s.HasColumn(propertyTypeColumn)
	hasPrices := s.HasColumn(priceColumn)

	for i := range s.Len() {
		county := s.Value(i, cols.County)
		if record.Missing(county, sentinel) {
			a.MissingCounty++
		} else {
			counties[strings.TrimSpace(county)]++
		}
		if city := strings.TrimSpace(s.Value(i, cols.City)); city != "" {
			cities[city]++
		}
		if zip := strings.TrimSpace(s.Value(i, cols.Zip)); zip != "" {
			zips[zip]++
		}
		if hasTypes {
			if pt := strings.TrimSpace(s.Value(i, propertyTypeColumn)); pt != "" {
				types[pt]++
			}
		}
		if hasPrices {
			if p, err := strconv.ParseFloat(strings.TrimSpace(s.Value(i, priceColumn)), 64); err == nil {
				prices = append(prices, p)
			}
		}
	}

	a.Counties = rankedCounts(counties, 0)
	a.TopCities = rankedCounts(cities, topN)
	a.TopZips = rankedCounts(zips, topN)
	a.PropertyTypes = rankedCounts(types, 0)
	a.Price = priceStats(prices)

	return a
}

// Render formats the analysis as text, json, or yaml.
func (a *Analysis) Render(format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, eris.Wrap(err, "report: marshal json")
		}
		return out, nil
	case "yaml":
		out, err := yaml.Marshal(a)
		if err != nil {
			return nil, eris.Wrap(err, "report: marshal yaml")
		}
		return out, nil
	case "text", "":
		return []byte(a.text()), nil
	default:
		return nil, eris.Errorf("report: unknown format %q (valid: text, json, yaml)", format)
	}
}

func (a *Analysis) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total properties: %d\n", a.TotalProperties)
	fmt.Fprintf(&b, "Missing county:   %d\n", a.MissingCounty)

	writeSection := func(title string, counts []Count, limit int) {
		if len(counts) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		if limit > 0 && len(counts) > limit {
			counts = counts[:limit]
		}
		for _, c := range counts {
			fmt.Fprintf(&b, "  %s: %d\n", c.Name, c.Count)
		}
	}

	writeSection("Top counties", a.Counties, 5)
	writeSection("Top cities", a.TopCities, 5)
	writeSection("Top zip codes", a.TopZips, 5)
	writeSection("Property types", a.PropertyTypes, 0)

	if a.Price != nil {
		fmt.Fprintf(&b, "\nPrice statistics:\n")
		fmt.Fprintf(&b, "  Mean:   $%.2f\n", a.Price.Mean)
		fmt.Fprintf(&b, "  Median: $%.2f\n", a.Price.Median)
		fmt.Fprintf(&b, "  Min:    $%.2f\n", a.Price.Min)
		fmt.Fprintf(&b, "  Max:    $%.2f\n", a.Price.Max)
	}

	return b.String()
}

// rankedCounts sorts a counter map by count descending, name ascending for
// ties, truncated to limit when limit > 0.
func rankedCounts(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for name, count := range m {
		out = append(out, Count{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func priceStats(prices []float64) *PriceStats {
	if len(prices) == 0 {
		return nil
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return &PriceStats{
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
