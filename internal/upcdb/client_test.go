package upcdb

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

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(pricing.NewThrottle(time.Millisecond), WithBaseURL(server.URL))
	return client, server
}

func TestLookupSuccess(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		assert.Equal(t, "312546005747", r.URL.Query().Get("upc"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "OK",
			"items": [{
				"title": "Halls Relief Cough Drops",
				"brand": "Halls",
				"lowest_recorded_price": 2.97,
				"offers": [{"merchant": "Some Store", "price": 3.49, "link": "http://example.com/p/1"}]
			}]
		}`))
	})
	defer server.Close()

	quote, err := client.Lookup(context.Background(), pricing.Query{UPC: "312546005747"})
	require.NoError(t, err)
	assert.InDelta(t, 2.97, quote.Price, 0.001)
	assert.Equal(t, "Halls Relief Cough Drops", quote.ProductName)
	assert.Equal(t, "http://example.com/p/1", quote.SourceURL)
}

func TestLookupFallsBackToOfferPrice(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"items": [{
				"title": "Widget",
				"lowest_recorded_price": 0,
				"offers": [{"price": 0}, {"price": 4.99, "link": "http://example.com/p/2"}]
			}]
		}`))
	})
	defer server.Close()

	quote, err := client.Lookup(context.Background(), pricing.Query{UPC: "012345678905"})
	require.NoError(t, err)
	assert.InDelta(t, 4.99, quote.Price, 0.001)
	assert.Equal(t, "http://example.com/p/2", quote.SourceURL)
}

func TestLookupMissOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty result set",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"code": "OK", "items": []}`))
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"items": [`))
			},
		},
		{
			name: "item without any price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"items": [{"title": "Widget"}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(tt.handler)
			defer server.Close()

			_, err := client.Lookup(context.Background(), pricing.Query{UPC: "012345678905"})
			require.Error(t, err)
			assert.True(t, common.IsMiss(err), "expected a miss, got %v", err)
		})
	}
}

func TestLookupWithoutUPCIsMiss(t *testing.T) {
	client := NewClient(pricing.NewThrottle(time.Millisecond))

	_, err := client.Lookup(context.Background(), pricing.Query{Description: "some product"})
	assert.ErrorIs(t, err, common.ErrMiss)
}

func TestLookupTransportErrorIsNotMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(pricing.NewThrottle(time.Millisecond), WithBaseURL(server.URL))
	_, err := client.Lookup(context.Background(), pricing.Query{UPC: "012345678905"})
	require.Error(t, err)
	assert.False(t, common.IsMiss(err))
	assert.ErrorIs(t, err, common.ErrTransport)
}
