package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/types"
	"github.com/worldpulse/devdash/pkg/charts"
	"github.com/worldpulse/devdash/pkg/dataset"
)

func fptr(v float64) *float64 { return &v }

// setupTestController builds a controller over a synthetic three-country table.
func setupTestController(t *testing.T) *Controller {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	var obs []dataset.Observation
	water := map[string]float64{"US": 10, "KE": 90, "DE": 50}
	for _, code := range []string{"US", "KE", "DE"} {
		for _, year := range []int{2000, 2010, 2020} {
			values := map[string]*float64{
				"gdp":  fptr(float64(year)),
				"life": fptr(70),
			}
			if year == 2020 {
				values["water"] = fptr(water[code])
			}
			obs = append(obs, dataset.Observation{
				CountryCode: code,
				CountryName: "Name " + code,
				Year:        year,
				Values:      values,
			})
		}
	}
	table, err := dataset.NewTable(obs, []string{"gdp", "life", "water"})
	require.NoError(t, err)

	app := &types.App{
		Logger:  logger,
		Dataset: table,
		Charts: charts.Config{
			GDPField:   "gdp",
			LifeField:  "life",
			WaterField: "water",
			StartYear:  2000,
			EndYear:    2020,
		},
	}
	return NewController(app)
}

func doRequest(t *testing.T, c *Controller, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c.NewRouter().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	c := setupTestController(t)
	rec := doRequest(t, c, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleIndex(t *testing.T) {
	c := setupTestController(t)
	rec := doRequest(t, c, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "World Bank Dashboard: 2000-2020")
	assert.Contains(t, rec.Body.String(), "gdp-life-scatter")
	assert.Contains(t, rec.Body.String(), "water-access-bar")
}

func TestHandleDataset(t *testing.T) {
	c := setupTestController(t)
	rec := doRequest(t, c, http.MethodGet, "/api/dataset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary types.DatasetSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 9, summary.Rows)
	assert.Equal(t, 3, summary.Countries)
	assert.Equal(t, []int{2000, 2010, 2020}, summary.Years)
	assert.Equal(t, 2020, summary.EndYear)
}

func TestHandleChartsInitialRender(t *testing.T) {
	c := setupTestController(t)
	rec := doRequest(t, c, http.MethodGet, "/api/charts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ChartsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotNil(t, resp.Scatter)
	require.NotNil(t, resp.Bar)
	assert.Empty(t, resp.Selection)
	assert.Len(t, resp.Scatter.Frames, 3)
	assert.Equal(t, []float64{90, 50, 10}, resp.Bar.Data[0].Y)
}

func TestHandleSelectFiltersBothCharts(t *testing.T) {
	c := setupTestController(t)
	body := `{"scatter": {"points": [
		{"customdata": ["US", "Name US"]},
		{"customdata": ["KE", "Name KE"]}
	]}}`

	rec := doRequest(t, c, http.MethodPost, "/api/select", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ChartsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Selection, 2)
	for _, frame := range resp.Scatter.Frames {
		for _, trace := range frame.Data {
			assert.Contains(t, []string{"US", "KE"}, trace.CustomData[0][0])
		}
	}
	for _, cd := range resp.Bar.Data[0].CustomData {
		assert.Contains(t, []string{"US", "KE"}, cd[0])
	}
}

func TestHandleSelectScatterBeatsBar(t *testing.T) {
	c := setupTestController(t)
	body := `{
		"scatter": {"points": [{"customdata": ["US", "Name US"]}]},
		"bar": {"points": [{"customdata": ["KE", "Name KE"]}]}
	}`

	rec := doRequest(t, c, http.MethodPost, "/api/select", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ChartsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Selection, 1)
	assert.Equal(t, "US", resp.Selection[0].Code)
}

func TestHandleSelectEmptyPayloadRendersFullTable(t *testing.T) {
	c := setupTestController(t)

	initial := doRequest(t, c, http.MethodGet, "/api/charts", "")
	selected := doRequest(t, c, http.MethodPost, "/api/select", `{"scatter": {"points": []}}`)
	require.Equal(t, http.StatusOK, selected.Code)

	var initialResp, selectedResp types.ChartsResponse
	require.NoError(t, json.Unmarshal(initial.Body.Bytes(), &initialResp))
	require.NoError(t, json.Unmarshal(selected.Body.Bytes(), &selectedResp))

	assert.Equal(t, initialResp.Scatter, selectedResp.Scatter)
	assert.Equal(t, initialResp.Bar, selectedResp.Bar)
}

func TestHandleSelectMalformedBody(t *testing.T) {
	c := setupTestController(t)
	rec := doRequest(t, c, http.MethodPost, "/api/select", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithCORSPreflight(t *testing.T) {
	c := setupTestController(t)
	handler := WithCORS(c.NewRouter())

	req := httptest.NewRequest(http.MethodOptions, "/api/charts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
