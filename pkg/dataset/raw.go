package dataset

import (
	"encoding/json"
	"fmt"
)

// CountryField holds the country cell of a raw row. The upstream API encodes
// it either as a structured {"id","value"} pair or as a bare string; both
// shapes are accepted and the original encoding is preserved on re-marshal so
// the cache round-trips byte-faithfully.
type CountryField struct {
	Code string
	Name string
	flat bool
}

// StructuredCountry builds a CountryField from an id/name pair.
func StructuredCountry(code, name string) CountryField {
	return CountryField{Code: code, Name: name}
}

// FlatCountry builds a CountryField from a bare string. Code and name both
// take the string, matching the flat-shape fallback of the reference flow.
func FlatCountry(s string) CountryField {
	return CountryField{Code: s, Name: s, flat: true}
}

// Flat reports whether the country arrived as a bare string.
func (c CountryField) Flat() bool { return c.flat }

type structuredCountry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (c *CountryField) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty country field")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = FlatCountry(s)
		return nil
	case '{':
		var sc structuredCountry
		if err := json.Unmarshal(data, &sc); err != nil {
			return err
		}
		*c = StructuredCountry(sc.ID, sc.Value)
		return nil
	default:
		return fmt.Errorf("unsupported country field shape: %s", data)
	}
}

func (c CountryField) MarshalJSON() ([]byte, error) {
	if c.flat {
		return json.Marshal(c.Name)
	}
	return json.Marshal(structuredCountry{ID: c.Code, Value: c.Name})
}

// RawRow is one country/date row as fetched, before any reshaping. Values is
// keyed by raw indicator code; a nil value means no data reported.
type RawRow struct {
	Country CountryField        `json:"country"`
	Date    string              `json:"date"`
	Values  map[string]*float64 `json:"values"`
}

// RawTable is the pre-normalization snapshot. This is the canonical shape
// stored in the on-disk cache: normalization always runs after load, so the
// cache-hit and cache-miss paths share one code path.
type RawTable struct {
	Rows []RawRow `json:"rows"`
}
