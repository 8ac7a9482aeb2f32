package assetapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

const DefaultTimeout = 10 * time.Second

// Client talks to the inventory API.
type Client struct {
	base    *url.URL
	http    *http.Client
	token   string
	logger  *slog.Logger
	metrics *metrics.Registry
}

var _ Source = (*Client)(nil)

type ClientOption func(*Client)

// WithToken sends token as a bearer token on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(r *metrics.Registry) ClientOption {
	return func(c *Client) { c.metrics = r }
}

// NewClient takes the API root, for example https://inventory.local/api.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https: %s", baseURL)
	}
	c := &Client{
		base: base,
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = lib.OrDiscard(c.logger)
	return c, nil
}

func (c *Client) Graph(ctx context.Context, assetType graphdata.AssetType) (graphdata.Graph, error) {
	var g graphdata.Graph
	err := c.get(ctx, "graph", graphURL(c.base, string(assetType)), &g)
	return g, err
}

// impactResponse accepts both a plain graph and the backend's BFS report, which lists
// the impacted assets without links.
type impactResponse struct {
	graphdata.Graph
	Source   *graphdata.Node  `json:"source"`
	Impacted []graphdata.Node `json:"impacted"`
}

func (c *Client) Impact(ctx context.Context, id string, depth int) (graphdata.Graph, error) {
	if err := checkDepth(depth); err != nil {
		return graphdata.Graph{}, err
	}
	var resp impactResponse
	if err := c.get(ctx, "impact", impactURL(c.base, id, depth), &resp); err != nil {
		return graphdata.Graph{}, err
	}
	if len(resp.Nodes) > 0 || resp.Source == nil {
		return resp.Graph, nil
	}

	// The report has no links, take them from the full graph.
	ids := lib.NewSet(resp.Source.ID)
	for _, n := range resp.Impacted {
		ids.Add(n.ID)
	}
	full, err := c.Graph(ctx, "")
	if err != nil {
		return graphdata.Graph{}, fmt.Errorf("fetch graph for impact links: %w", err)
	}
	return graphdata.Subgraph(full, ids), nil
}

func (c *Client) get(ctx context.Context, op, target string, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.RecordFetch(op, status, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("Fetching from asset API", "op", op, "host", hostname(c.base), "url", target)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
