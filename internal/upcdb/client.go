// Package upcdb implements exact-match retail price lookup against the
// UPCitemdb product database API.
package upcdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/pricing"
)

const (
	defaultBaseURL   = "https://api.upcitemdb.com/prod/trial"
	defaultUserAgent = "dealscope/1.0"
	defaultTimeout   = 5 * time.Second
)

// Client looks up products by UPC. It satisfies pricing.Source.
type Client struct {
	httpClient *http.Client
	throttle   *pricing.Throttle
	baseURL    string
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a UPCitemdb client sharing the given throttle.
func NewClient(throttle *pricing.Throttle, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		throttle:   throttle,
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies this source in logs and provenance tags.
func (c *Client) Name() string { return "upcdb" }

// API response types.
type lookupResponse struct {
	Code  string `json:"code"`
	Items []item `json:"items"`
}

type item struct {
	Title               string  `json:"title"`
	Brand               string  `json:"brand"`
	LowestRecordedPrice float64 `json:"lowest_recorded_price"`
	Offers              []offer `json:"offers"`
}

type offer struct {
	Merchant string  `json:"merchant"`
	Price    float64 `json:"price"`
	Link     string  `json:"link"`
}

// Lookup fetches the product record for a UPC and extracts a retail price.
// Queries without a UPC and every routine upstream failure are misses.
func (c *Client) Lookup(ctx context.Context, q pricing.Query) (pricing.Quote, error) {
	if q.UPC == "" {
		return pricing.Quote{}, common.ErrMiss
	}

	if err := c.throttle.Wait(ctx); err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	u := fmt.Sprintf("%s/lookup?upc=%s", c.baseURL, url.QueryEscape(q.UPC))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("UPC lookup returned non-OK status",
			"upc", q.UPC,
			"status", resp.StatusCode)
		return pricing.Quote{}, fmt.Errorf("%w: status %d", common.ErrMiss, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if len(body.Items) == 0 {
		return pricing.Quote{}, common.ErrMiss
	}

	it := body.Items[0]
	price, link := extractPrice(it)
	if price <= 0 {
		return pricing.Quote{}, common.ErrMiss
	}

	slog.Debug("UPC lookup hit",
		"upc", q.UPC,
		"title", it.Title,
		"price", price)

	return pricing.Quote{
		Price:       price,
		ProductName: it.Title,
		SourceURL:   link,
	}, nil
}

// extractPrice picks the lowest recorded price when present, otherwise the
// first positive offer.
func extractPrice(it item) (float64, string) {
	link := ""
	if len(it.Offers) > 0 {
		link = it.Offers[0].Link
	}
	if it.LowestRecordedPrice > 0 {
		return it.LowestRecordedPrice, link
	}
	for _, o := range it.Offers {
		if o.Price > 0 {
			return o.Price, o.Link
		}
	}
	return 0, ""
}
