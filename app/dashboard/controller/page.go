package controller

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>World Bank Dashboard: {{.StartYear}}-{{.EndYear}}</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    body { font-family: sans-serif; margin: 1rem; }
    #charts { display: flex; justify-content: space-between; }
    .chart { width: 49%; height: 520px; }
  </style>
</head>
<body>
  <h1>World Bank Dashboard: {{.StartYear}}-{{.EndYear}}</h1>
  <div id="charts">
    <div id="gdp-life-scatter" class="chart"></div>
    <div id="water-access-bar" class="chart"></div>
  </div>
  <script>
    const scatterDiv = document.getElementById('gdp-life-scatter');
    const barDiv = document.getElementById('water-access-bar');

    function draw(resp) {
      Plotly.react(scatterDiv, resp.scatter.data, resp.scatter.layout).then(() => {
        if (resp.scatter.frames) {
          Plotly.addFrames(scatterDiv, resp.scatter.frames);
        }
      });
      Plotly.react(barDiv, resp.bar.data, resp.bar.layout);
    }

    function clickPayload(evt) {
      return {
        points: evt.points.map(p => ({ customdata: p.customdata }))
      };
    }

    function select(body) {
      fetch('/api/select', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
      }).then(r => r.json()).then(draw);
    }

    fetch('/api/charts').then(r => r.json()).then(resp => {
      draw(resp);
      scatterDiv.on('plotly_click', evt => select({ scatter: clickPayload(evt) }));
      barDiv.on('plotly_click', evt => select({ bar: clickPayload(evt) }));
    });

    const proto = location.protocol === 'https:' ? 'wss' : 'ws';
    const ws = new WebSocket(proto + '://' + location.host + '/api/ws');
    ws.onmessage = e => {
      const msg = JSON.parse(e.data);
      if (msg.type === 'charts.updated') {
        draw(msg.payload);
      }
    };
  </script>
</body>
</html>
`))

// HandleIndex serves the dashboard page: two chart regions wired to the
// charts and select endpoints, plus the websocket for cross-page updates.
func (c *Controller) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.Execute(w, map[string]int{
		"StartYear": c.App.Charts.StartYear,
		"EndYear":   c.App.Charts.EndYear,
	})
	if err != nil {
		c.App.Logger.Error("Failed to render index page", zap.Error(err))
	}
}
