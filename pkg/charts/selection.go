package charts

import "github.com/worldpulse/devdash/pkg/dataset"

// ClickPoint is one clicked data point as reported by the chart frontend.
// CustomData mirrors the [code, name] pair attached at build time.
type ClickPoint struct {
	CustomData []string `json:"customdata"`
}

// ClickEvent is the payload of a click on either chart.
type ClickEvent struct {
	Points []ClickPoint `json:"points"`
}

// Selection is the ephemeral set of countries derived from the most recent
// click. Empty means no filter.
type Selection struct {
	Countries []dataset.Country `json:"countries"`
}

// IsEmpty reports whether the selection carries no countries.
func (s Selection) IsEmpty() bool { return len(s.Countries) == 0 }

// Codes returns the selected country codes, deduplicated in click order.
func (s Selection) Codes() []string {
	seen := make(map[string]bool, len(s.Countries))
	var codes []string
	for _, c := range s.Countries {
		if !seen[c.Code] {
			seen[c.Code] = true
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// ExtractSelection derives a selection from the click payloads of the two
// charts. When both carry a payload the scatter chart wins; points without
// customdata are skipped; no usable points yields the empty selection, which
// falls back to the full table.
func ExtractSelection(scatter, bar *ClickEvent) Selection {
	ev := scatter
	if ev == nil {
		ev = bar
	}
	if ev == nil {
		return Selection{}
	}

	var sel Selection
	for _, p := range ev.Points {
		if len(p.CustomData) == 0 || p.CustomData[0] == "" {
			continue
		}
		c := dataset.Country{Code: p.CustomData[0]}
		if len(p.CustomData) > 1 {
			c.Name = p.CustomData[1]
		}
		sel.Countries = append(sel.Countries, c)
	}
	return sel
}
