package charts

// Figure is a declarative, renderer-agnostic chart specification shaped after
// the plotly figure object: traces, a layout, and optional animation frames.
// The server only ever ships these as JSON; rendering is the browser's job.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Trace is one data series. CustomData carries the (country_code,
// country_name) pair per point so click events can be mapped back to rows.
type Trace struct {
	Type       string     `json:"type"`
	Name       string     `json:"name,omitempty"`
	Mode       string     `json:"mode,omitempty"`
	X          []any      `json:"x"`
	Y          []float64  `json:"y"`
	CustomData [][]string `json:"customdata,omitempty"`
}

// Frame is one animation step, named after the year it shows.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       Axis         `json:"xaxis,omitzero"`
	YAxis       Axis         `json:"yaxis,omitzero"`
	ClickMode   string       `json:"clickmode,omitempty"`
	ShowLegend  bool         `json:"showlegend"`
	Sliders     []Slider     `json:"sliders,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

type Axis struct {
	Title     string `json:"title,omitempty"`
	TickAngle int    `json:"tickangle,omitempty"`
}

// Slider is the per-frame scrubber attached to animated figures.
type Slider struct {
	Active int          `json:"active"`
	Steps  []SliderStep `json:"steps"`
}

type SliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// UpdateMenu holds the play/pause buttons for animated figures.
type UpdateMenu struct {
	Type    string   `json:"type"`
	Buttons []Button `json:"buttons"`
}

type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Config names the canonical table fields the builders read and the year
// range baked into the flow.
type Config struct {
	GDPField   string
	LifeField  string
	WaterField string
	StartYear  int
	EndYear    int
}
