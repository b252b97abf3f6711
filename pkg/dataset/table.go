package dataset

import (
	"fmt"
	"sort"
)

// Observation is one country/year row of the normalized table. Values is
// keyed by the human-readable indicator label; nil means no data reported.
type Observation struct {
	CountryCode string              `json:"countryCode"`
	CountryName string              `json:"countryName"`
	Year        int                 `json:"year"`
	Values      map[string]*float64 `json:"values"`
}

// Value returns the named indicator value and whether it is present.
func (o Observation) Value(field string) (float64, bool) {
	v, ok := o.Values[field]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Country is a (code, name) pair as attached to chart points.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Table is the immutable observation table held for the lifetime of the
// process. (CountryCode, Year) is unique within it; it is never mutated after
// construction, so concurrent renders need no locking.
type Table struct {
	obs    []Observation
	fields []string
}

// NewTable builds a table from observations, enforcing (country_code, year)
// uniqueness. fields lists the canonical indicator field names in render order.
func NewTable(obs []Observation, fields []string) (*Table, error) {
	seen := make(map[string]int, len(obs))
	for i, o := range obs {
		key := fmt.Sprintf("%s/%d", o.CountryCode, o.Year)
		if j, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate observation for %s in %d (rows %d and %d)",
				o.CountryCode, o.Year, j, i)
		}
		seen[key] = i
	}
	return &Table{obs: obs, fields: fields}, nil
}

// Len returns the number of observations.
func (t *Table) Len() int { return len(t.obs) }

// Fields returns the canonical indicator field names.
func (t *Table) Fields() []string { return t.fields }

// Observations exposes the underlying rows. Callers must treat the slice as
// read-only.
func (t *Table) Observations() []Observation { return t.obs }

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := map[int]bool{}
	var years []int
	for _, o := range t.obs {
		if !seen[o.Year] {
			seen[o.Year] = true
			years = append(years, o.Year)
		}
	}
	sort.Ints(years)
	return years
}

// ByYear returns the observations for a single year, in table order.
func (t *Table) ByYear(year int) []Observation {
	var out []Observation
	for _, o := range t.obs {
		if o.Year == year {
			out = append(out, o)
		}
	}
	return out
}

// Countries returns the distinct countries in first-seen order.
func (t *Table) Countries() []Country {
	seen := map[string]bool{}
	var out []Country
	for _, o := range t.obs {
		if !seen[o.CountryCode] {
			seen[o.CountryCode] = true
			out = append(out, Country{Code: o.CountryCode, Name: o.CountryName})
		}
	}
	return out
}

// Filter restricts the table to the given country codes. An empty selection
// means no filter: the table itself is returned unchanged.
func (t *Table) Filter(codes []string) *Table {
	if len(codes) == 0 {
		return t
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	var obs []Observation
	for _, o := range t.obs {
		if set[o.CountryCode] {
			obs = append(obs, o)
		}
	}
	return &Table{obs: obs, fields: t.fields}
}
