package walmart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	_, keyPath := writeTestKey(t)
	signer, err := NewSigner("test-consumer", keyPath, "1")
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	client := NewClient(signer, pricing.NewThrottle(time.Millisecond), WithBaseURL(server.URL))
	return client, server
}

func TestLookupByUPCHit(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "312546005747", r.URL.Query().Get("upc"))
		assert.NotEmpty(t, r.Header.Get("WM_SEC.AUTH_SIGNATURE"))
		assert.NotEmpty(t, r.Header.Get("WM_CONSUMER.INTIMESTAMP"))

		_, _ = w.Write([]byte(`{"items": [{"itemId": 555, "name": "Halls Cough Drops", "salePrice": 2.97}]}`))
	})
	defer server.Close()

	quote, err := client.Lookup(context.Background(), pricing.Query{UPC: "312546005747", Description: "HALLS COUGH DROPS"})
	require.NoError(t, err)
	assert.InDelta(t, 2.97, quote.Price, 0.001)
	assert.Equal(t, "https://walmart.com/ip/555", quote.SourceURL)
}

func TestLookupUsesMSRPWhenNoSalePrice(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		_, _ = w.Write([]byte(`{"items": [{"itemId": 1, "name": "Widget", "msrp": 12.99}]}`))
	})
	defer server.Close()

	quote, err := client.Lookup(context.Background(), pricing.Query{UPC: "012345678905"})
	require.NoError(t, err)
	assert.InDelta(t, 12.99, quote.Price, 0.001)
}

func TestLookupFallsBackToSearch(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items":
			_, _ = w.Write([]byte(`{"items": []}`))
		case "/search":
			assert.Equal(t, "KOOL-AID SOUR BELTS 4FRUITY FLAVORS", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"items": [
				{"itemId": 10, "name": "Kool-Aid Sour Belts Candy", "salePrice": 1.87},
				{"itemId": 11, "name": "Unrelated Garden Hose", "salePrice": 15.00}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	defer server.Close()

	quote, err := client.Lookup(context.Background(), pricing.Query{
		UPC:         "083933263155",
		Description: "KOOL-AID SOUR BELTS 3.5oz 4FRUITY FLAVORS",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.87, quote.Price, 0.001)
	assert.Equal(t, "https://walmart.com/ip/10", quote.SourceURL)
}

func TestSearchRejectsWeakMatches(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"itemId": 9, "name": "Completely Different Product", "salePrice": 3.00}]}`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), pricing.Query{Description: "ACME WIDGET DELUXE EDITION"})
	require.Error(t, err)
	assert.True(t, common.IsMiss(err))
}

func TestLookupAuthRejectionIsAuthMiss(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), pricing.Query{Description: "HALLS COUGH DROPS"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAuthMiss)
	assert.True(t, common.IsMiss(err), "auth failures are surfaced but treated as misses")
}

func TestLookupMalformedSearchPayloadIsMiss(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), pricing.Query{Description: "HALLS COUGH DROPS"})
	require.Error(t, err)
	assert.True(t, common.IsMiss(err))
}

func TestBestMatchScoring(t *testing.T) {
	items := []searchItem{
		{ItemID: 1, Name: "Knorr Mexican Chicken Bouillon 7.9 oz", SalePrice: 2.48},
		{ItemID: 2, Name: "Knorr Beef Bouillon", SalePrice: 2.18},
		{ItemID: 3, Name: "Chicken Feed 50lb", SalePrice: 30.00},
		{ItemID: 4, Name: "Free Item", SalePrice: 0},
	}

	best, score, ok := bestMatch("knorr mexican chicken bouillon", items)
	require.True(t, ok)
	assert.Equal(t, int64(1), best.ItemID)
	assert.Greater(t, score, 0.3)
}

func TestBestMatchBelowThreshold(t *testing.T) {
	items := []searchItem{
		{ItemID: 1, Name: "Totally Unrelated Thing", SalePrice: 9.99},
	}

	_, _, ok := bestMatch("acme widget deluxe edition bundle", items)
	assert.False(t, ok)
}
