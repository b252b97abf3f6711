package worldbank

import "encoding/json"

// Ref is the {id, value} pair the v2 API uses for both the indicator and the
// country cells.
type Ref struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// DataPoint is one row of an indicator response.
type DataPoint struct {
	Indicator   Ref      `json:"indicator"`
	Country     Ref      `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	ObsStatus   string   `json:"obs_status"`
	Decimal     int      `json:"decimal"`
}

// pageMeta is the first element of the two-element response envelope.
// per_page arrives as a string on some deployments, hence json.Number.
type pageMeta struct {
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	PerPage json.Number `json:"per_page"`
	Total   int         `json:"total"`
}

// apiMessage is the error envelope: a single-element array wrapping a message
// list instead of the usual [meta, rows] pair.
type apiMessage struct {
	Message []struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"message"`
}
