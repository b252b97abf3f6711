package charts

import (
	"fmt"
	"sort"

	"github.com/worldpulse/devdash/pkg/dataset"
)

// barLimit is the number of countries shown in the ranked bar chart.
const barLimit = 15

// BuildBar builds the ranked clean-water-access figure for the final year of
// the range: countries with a reported value, sorted non-increasing (stable,
// so ties keep table order), truncated to the top 15.
func BuildBar(t *dataset.Table, cfg Config) *Figure {
	type entry struct {
		code  string
		name  string
		value float64
	}

	var entries []entry
	for _, o := range t.ByYear(cfg.EndYear) {
		v, ok := o.Value(cfg.WaterField)
		if !ok {
			continue
		}
		entries = append(entries, entry{code: o.CountryCode, name: o.CountryName, value: v})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].value > entries[j].value
	})
	if len(entries) > barLimit {
		entries = entries[:barLimit]
	}

	trace := Trace{
		Type:       "bar",
		X:          make([]any, 0, len(entries)),
		Y:          make([]float64, 0, len(entries)),
		CustomData: make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		trace.X = append(trace.X, e.name)
		trace.Y = append(trace.Y, e.value)
		trace.CustomData = append(trace.CustomData, []string{e.code, e.name})
	}

	return &Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title:     fmt.Sprintf("Top %d Countries by Clean Water Access (%d)", barLimit, cfg.EndYear),
			XAxis:     Axis{TickAngle: -45},
			YAxis:     Axis{Title: "Clean Water Access (%)"},
			ClickMode: "event+select",
		},
	}
}
