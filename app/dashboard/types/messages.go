package types

import (
	"github.com/worldpulse/devdash/pkg/charts"
	"github.com/worldpulse/devdash/pkg/dataset"
)

// SelectRequest carries the click payloads from the two chart regions. Either
// side may be absent; when both are present the scatter payload wins.
type SelectRequest struct {
	Scatter *charts.ClickEvent `json:"scatter,omitempty"`
	Bar     *charts.ClickEvent `json:"bar,omitempty"`
}

// ChartsResponse is the new state of both chart regions after a render.
type ChartsResponse struct {
	Scatter   *charts.Figure    `json:"scatter"`
	Bar       *charts.Figure    `json:"bar"`
	Selection []dataset.Country `json:"selection,omitempty"`
}

// DatasetSummary describes the loaded table.
type DatasetSummary struct {
	Rows      int      `json:"rows"`
	Countries int      `json:"countries"`
	Years     []int    `json:"years"`
	Fields    []string `json:"fields"`
	StartYear int      `json:"startYear"`
	EndYear   int      `json:"endYear"`
}

// WSServerMessage represents a message to WebSocket client
type WSServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
