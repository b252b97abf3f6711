package charts

import (
	"fmt"
	"strconv"

	"github.com/worldpulse/devdash/pkg/dataset"
)

// BuildScatter builds the animated GDP-vs-life-expectancy figure: one frame
// per distinct year present in the table (ascending), one marker trace per
// country within each frame. Points missing either value are omitted.
func BuildScatter(t *dataset.Table, cfg Config) *Figure {
	fig := &Figure{
		Data: []Trace{},
		Layout: Layout{
			Title:      fmt.Sprintf("GDP per Capita vs Life Expectancy (%d-%d)", cfg.StartYear, cfg.EndYear),
			XAxis:      Axis{Title: "GDP per Capita (US$)"},
			YAxis:      Axis{Title: "Life Expectancy (years)"},
			ClickMode:  "event+select",
			ShowLegend: true,
		},
	}

	years := t.Years()
	if len(years) == 0 {
		return fig
	}

	frames := make([]Frame, 0, len(years))
	steps := make([]SliderStep, 0, len(years))
	for _, year := range years {
		label := strconv.Itoa(year)
		frames = append(frames, Frame{Name: label, Data: yearTraces(t, year, cfg)})
		steps = append(steps, SliderStep{
			Label:  label,
			Method: "animate",
			Args: []any{
				[]string{label},
				map[string]any{
					"mode":       "immediate",
					"transition": map[string]any{"duration": 0},
				},
			},
		})
	}

	fig.Data = frames[0].Data
	fig.Frames = frames
	fig.Layout.Sliders = []Slider{{Steps: steps}}
	fig.Layout.UpdateMenus = []UpdateMenu{{
		Type: "buttons",
		Buttons: []Button{{
			Label:  "Play",
			Method: "animate",
			Args: []any{
				nil,
				map[string]any{
					"fromcurrent": true,
					"frame":       map[string]any{"duration": 500},
				},
			},
		}},
	}}
	return fig
}

// yearTraces builds one single-point trace per country for the given year,
// keeping only countries with both required values reported.
func yearTraces(t *dataset.Table, year int, cfg Config) []Trace {
	var traces []Trace
	for _, o := range t.ByYear(year) {
		gdp, ok := o.Value(cfg.GDPField)
		if !ok {
			continue
		}
		life, ok := o.Value(cfg.LifeField)
		if !ok {
			continue
		}
		traces = append(traces, Trace{
			Type:       "scatter",
			Mode:       "markers",
			Name:       o.CountryName,
			X:          []any{gdp},
			Y:          []float64{life},
			CustomData: [][]string{{o.CountryCode, o.CountryName}},
		})
	}
	if traces == nil {
		traces = []Trace{}
	}
	return traces
}
