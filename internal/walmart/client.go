package walmart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/fuzzy"
	"github.com/rishabhm/dealscope/internal/pricing"
)

const (
	defaultBaseURL = "https://developer.api.walmart.com/api-proxy/service/affil/product/v2"
	defaultTimeout = 10 * time.Second

	// searchResultLimit bounds how many candidates a search returns.
	searchResultLimit = 5
	// minMatchScore is the minimum word-overlap score for a search result
	// to be accepted as the same product.
	minMatchScore = 0.3
)

// Client resolves retail prices through the affiliate API. It satisfies
// pricing.Source: exact item lookup by UPC when available, free-text search
// otherwise.
type Client struct {
	httpClient *http.Client
	signer     *Signer
	throttle   *pricing.Throttle
	baseURL    string
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

// NewClient creates an affiliate API client using the given signer.
func NewClient(signer *Signer, throttle *pricing.Throttle, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		signer:     signer,
		throttle:   throttle,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies this source in logs and provenance tags.
func (c *Client) Name() string { return "walmart" }

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ItemID    int64   `json:"itemId"`
	Name      string  `json:"name"`
	SalePrice float64 `json:"salePrice"`
	MSRP      float64 `json:"msrp"`
}

// Lookup tries an exact item lookup by UPC, then a free-text search on the
// cleaned description.
func (c *Client) Lookup(ctx context.Context, q pricing.Query) (pricing.Quote, error) {
	if q.UPC != "" {
		quote, err := c.lookupByUPC(ctx, q.UPC)
		if err == nil {
			return quote, nil
		}
		if !common.IsMiss(err) {
			return pricing.Quote{}, err
		}
	}
	return c.search(ctx, q.Description)
}

func (c *Client) lookupByUPC(ctx context.Context, upc string) (pricing.Quote, error) {
	params := url.Values{"upc": {upc}}
	body, err := c.get(ctx, "/items", params)
	if err != nil {
		return pricing.Quote{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if len(resp.Items) == 0 {
		return pricing.Quote{}, common.ErrMiss
	}

	it := resp.Items[0]
	price := it.SalePrice
	if price <= 0 {
		price = it.MSRP
	}
	if price <= 0 {
		return pricing.Quote{}, common.ErrMiss
	}

	slog.Debug("Retail item lookup hit", "upc", upc, "name", it.Name, "price", price)

	return pricing.Quote{
		Price:       price,
		ProductName: it.Name,
		SourceURL:   itemURL(it.ItemID),
	}, nil
}

// search queries the catalog by cleaned product name and accepts the best
// candidate whose name shares enough words with the query.
func (c *Client) search(ctx context.Context, description string) (pricing.Quote, error) {
	cleaned := fuzzy.CleanName(description)
	if cleaned == "" {
		return pricing.Quote{}, common.ErrMiss
	}

	params := url.Values{
		"query":    {cleaned},
		"numItems": {fmt.Sprintf("%d", searchResultLimit)},
		"format":   {"json"},
	}
	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return pricing.Quote{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return pricing.Quote{}, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	best, score, ok := bestMatch(cleaned, resp.Items)
	if !ok {
		slog.Debug("Retail search found no acceptable match", "query", cleaned)
		return pricing.Quote{}, common.ErrMiss
	}

	slog.Debug("Retail search hit",
		"query", cleaned,
		"name", best.Name,
		"price", best.SalePrice,
		"score", score)

	return pricing.Quote{
		Price:       best.SalePrice,
		ProductName: best.Name,
		SourceURL:   itemURL(best.ItemID),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if err := c.signer.Sign(req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		slog.Warn("Retail API rejected credentials", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", common.ErrAuthMiss, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", common.ErrMiss, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	return body, nil
}

// bestMatch scores candidates by word overlap between the cleaned query and
// the result name, returning the highest scorer above the threshold.
func bestMatch(query string, items []searchItem) (searchItem, float64, bool) {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return searchItem{}, 0, false
	}

	var best searchItem
	bestScore := 0.0
	for _, it := range items {
		if it.SalePrice <= 0 {
			continue
		}
		overlap := 0
		for w := range wordSet(it.Name) {
			if queryWords[w] {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(queryWords))
		if score > bestScore && score > minMatchScore {
			bestScore = score
			best = it
		}
	}
	return best, bestScore, bestScore > 0
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func itemURL(id int64) string {
	if id == 0 {
		return "https://walmart.com"
	}
	return fmt.Sprintf("https://walmart.com/ip/%d", id)
}
