package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/worldpulse/devdash/pkg/dataset"
	"github.com/worldpulse/devdash/pkg/retry"
	"github.com/worldpulse/devdash/pkg/utils"
)

// Client fetches development indicators from the World Bank v2 API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	perPage int
	retry   retry.Config
}

// Opts is the set of options for a new Client.
type Opts struct {
	BaseURL    string
	Timeout    time.Duration
	PerPage    int
	HTTPClient *http.Client
	Logger     *zap.Logger
	Retry      *retry.Config
}

// New creates a Client with the given options.
func New(o Opts) *Client {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.worldbank.org/v2"
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.PerPage <= 0 {
		o.PerPage = 1000
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	client := o.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	} else if client.Timeout == 0 {
		client.Timeout = o.Timeout
	}

	cfg := retry.DefaultConfig()
	if o.Retry != nil {
		cfg = *o.Retry
	}

	return &Client{
		baseURL: o.BaseURL,
		client:  client,
		logger:  o.Logger,
		perPage: o.PerPage,
		retry:   cfg,
	}
}

// FetchIndicator retrieves every datapoint for one indicator code over the
// inclusive year range, following the pages field of the response envelope.
func (c *Client) FetchIndicator(ctx context.Context, code string, startYear, endYear int) ([]DataPoint, error) {
	var points []DataPoint

	for page := 1; ; page++ {
		meta, rows, err := c.fetchPage(ctx, code, startYear, endYear, page)
		if err != nil {
			return nil, fmt.Errorf("indicator %s page %d: %w", code, page, err)
		}
		points = append(points, rows...)
		if page >= meta.Pages {
			break
		}
	}

	c.logger.Debug("Fetched indicator",
		zap.String("indicator", code),
		zap.Int("points", len(points)))
	return points, nil
}

func (c *Client) fetchPage(ctx context.Context, code string, startYear, endYear, page int) (*pageMeta, []DataPoint, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("date", fmt.Sprintf("%d:%d", startYear, endYear))
	q.Set("per_page", fmt.Sprintf("%d", c.perPage))
	q.Set("page", fmt.Sprintf("%d", page))
	reqURL := fmt.Sprintf("%s/country/all/indicator/%s?%s", c.baseURL, code, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = utils.DrainAndClose(resp.Body) }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	// Envelope: [meta, rows] on success, [{"message": [...]}] on failure.
	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}

	if len(envelope) < 2 {
		var msg apiMessage
		if len(envelope) == 1 && json.Unmarshal(envelope[0], &msg) == nil && len(msg.Message) > 0 {
			return nil, nil, fmt.Errorf("api error: %s (%s)", msg.Message[0].Value, msg.Message[0].Key)
		}
		return nil, nil, fmt.Errorf("unexpected envelope with %d elements", len(envelope))
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return nil, nil, fmt.Errorf("decode page meta: %w", err)
	}

	var rows []DataPoint
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, nil, fmt.Errorf("decode rows: %w", err)
	}
	if meta.Pages <= 0 {
		meta.Pages = 1
	}

	return &meta, rows, nil
}

// FetchAll fetches every indicator concurrently and merges the per-indicator
// series into one raw table, one row per country/date with a value column per
// indicator code. Each fetch is retried with backoff; any indicator that
// still fails fails the whole load.
func (c *Client) FetchAll(ctx context.Context, indicators map[string]string, startYear, endYear int) (*dataset.RawTable, error) {
	if len(indicators) == 0 {
		return nil, fmt.Errorf("no indicators configured")
	}

	codes := make([]string, 0, len(indicators))
	for code := range indicators {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var mu sync.Mutex
	series := make(map[string][]DataPoint, len(codes))

	pool := pond.NewPool(len(codes))
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	for _, code := range codes {
		code := code
		group.SubmitErr(func() error {
			var points []DataPoint
			err := retry.WithBackoff(groupCtx, c.retry, c.logger, "fetch "+code, func() error {
				var fetchErr error
				points, fetchErr = c.FetchIndicator(groupCtx, code, startYear, endYear)
				return fetchErr
			})
			if err != nil {
				return err
			}
			mu.Lock()
			series[code] = points
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("fetch indicators: %w", err)
	}

	return merge(series, codes), nil
}

// merge pivots per-indicator series into wide rows keyed by (country, date).
// Row order is deterministic: country code, then date descending to match the
// upstream presentation order.
func merge(series map[string][]DataPoint, codes []string) *dataset.RawTable {
	type key struct {
		country string
		date    string
	}

	rows := map[key]*dataset.RawRow{}
	var order []key

	for _, code := range codes {
		for _, p := range series[code] {
			k := key{country: p.Country.ID, date: p.Date}
			row, ok := rows[k]
			if !ok {
				row = &dataset.RawRow{
					Country: dataset.StructuredCountry(p.Country.ID, p.Country.Value),
					Date:    p.Date,
					Values:  map[string]*float64{},
				}
				rows[k] = row
				order = append(order, k)
			}
			row.Values[code] = p.Value
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].country != order[j].country {
			return order[i].country < order[j].country
		}
		return order[i].date > order[j].date
	})

	out := &dataset.RawTable{Rows: make([]dataset.RawRow, 0, len(order))}
	for _, k := range order {
		out.Rows = append(out.Rows, *rows[k])
	}
	return out
}
