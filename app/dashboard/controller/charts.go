package controller

import (
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/types"
	"github.com/worldpulse/devdash/pkg/charts"
)

// HandleDataset returns a summary of the loaded observation table.
func (c *Controller) HandleDataset(w http.ResponseWriter, r *http.Request) {
	t := c.App.Dataset
	c.writeJSON(w, types.DatasetSummary{
		Rows:      t.Len(),
		Countries: len(t.Countries()),
		Years:     t.Years(),
		Fields:    t.Fields(),
		StartYear: c.App.Charts.StartYear,
		EndYear:   c.App.Charts.EndYear,
	})
}

// HandleCharts returns the initial, unfiltered pair of chart specifications.
func (c *Controller) HandleCharts(w http.ResponseWriter, r *http.Request) {
	scatter, bar := charts.Render(c.App.Dataset, charts.Selection{}, c.App.Charts)
	c.writeJSON(w, types.ChartsResponse{Scatter: scatter, Bar: bar})
}

// HandleSelect is the chart-update cycle: extract the selection from the
// click payload, re-render both charts against the filtered (or full) table,
// respond with the new chart state and broadcast it to every open page.
func (c *Controller) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req types.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.App.Logger.Warn("Malformed select payload", zap.Error(err))
		http.Error(w, "malformed click payload", http.StatusBadRequest)
		return
	}

	sel := charts.ExtractSelection(req.Scatter, req.Bar)
	scatter, bar := charts.Render(c.App.Dataset, sel, c.App.Charts)

	resp := types.ChartsResponse{Scatter: scatter, Bar: bar, Selection: sel.Countries}
	c.App.Logger.Debug("Rendered charts",
		zap.Int("selected", len(sel.Countries)))

	c.writeJSON(w, resp)
	c.broadcast(types.WSServerMessage{Type: "charts.updated", Payload: resp})
}
