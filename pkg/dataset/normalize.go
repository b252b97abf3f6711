package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Normalize reshapes a raw snapshot into the observation table: the country
// cell becomes explicit code/name columns, the date becomes a year integer,
// and indicator codes are renamed to their display labels, which become the
// canonical field names used by the chart builders.
//
// The raw rows must encode the country field homogeneously. A table mixing
// flat and structured shapes is rejected rather than silently decoded row by
// row, since a mixed snapshot means the upstream source changed shape mid-page.
func Normalize(raw *RawTable, indicators map[string]string) (*Table, error) {
	fields := make([]string, 0, len(indicators))
	for _, label := range indicators {
		fields = append(fields, label)
	}
	sort.Strings(fields)

	if raw == nil || len(raw.Rows) == 0 {
		return NewTable(nil, fields)
	}

	flat := raw.Rows[0].Country.Flat()
	obs := make([]Observation, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		if row.Country.Flat() != flat {
			return nil, fmt.Errorf("mixed country field shapes: row 0 is %s, row %d is %s",
				shapeName(flat), i, shapeName(row.Country.Flat()))
		}
		if row.Country.Code == "" {
			return nil, fmt.Errorf("row %d: empty country code", i)
		}

		year, err := parseYear(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, row.Country.Code, err)
		}

		values := make(map[string]*float64, len(row.Values))
		for code, v := range row.Values {
			if label, ok := indicators[code]; ok {
				values[label] = v
			} else {
				// Unmapped codes pass through under their raw name.
				values[code] = v
			}
		}

		obs = append(obs, Observation{
			CountryCode: row.Country.Code,
			CountryName: row.Country.Name,
			Year:        year,
			Values:      values,
		})
	}

	return NewTable(obs, fields)
}

func shapeName(flat bool) string {
	if flat {
		return "flat"
	}
	return "structured"
}

// parseYear accepts the bare "2007" form the indicator API uses as well as
// full date strings.
func parseYear(date string) (int, error) {
	if len(date) == 4 {
		y, err := strconv.Atoi(date)
		if err != nil {
			return 0, fmt.Errorf("unparseable date %q", date)
		}
		return y, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, date); err == nil {
			return ts.Year(), nil
		}
	}
	return 0, fmt.Errorf("unparseable date %q", date)
}
