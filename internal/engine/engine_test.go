package engine

import (
	"context"
	"testing"

	"github.com/rishabhm/dealscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver returns a fixed price per item ID, NOT_FOUND otherwise.
type stubResolver struct {
	prices map[string]float64
	calls  []string
}

func (s *stubResolver) Resolve(_ context.Context, item model.InventoryItem) model.ResolvedPrice {
	s.calls = append(s.calls, item.ID)
	if p, ok := s.prices[item.ID]; ok {
		return model.ResolvedPrice{Value: p, Source: model.SourceUPCExact}
	}
	return model.NotFoundPrice()
}

func testItems() []model.InventoryItem {
	return []model.InventoryItem{
		{ID: "a", Description: "item a", SupplierPrice: 5},
		{ID: "b", Description: "item b", SupplierPrice: 10},
		{ID: "c", Description: "item c", SupplierPrice: 3},
		{ID: "d", Description: "item d", SupplierPrice: 7},
	}
}

func TestAnalyzeProducesOneResultPerItemInInputOrder(t *testing.T) {
	res := &stubResolver{prices: map[string]float64{"a": 25, "b": 20, "c": 10}}
	eng := New(res)

	results, summary, err := eng.Analyze(context.Background(), testItems())
	require.NoError(t, err)

	require.Len(t, results, 4)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, results[i].ItemID)
	}

	// a: 80% GOOD, b: 50% BAD, c: 70% OKAY, d: unresolved NO_PRICE.
	assert.Equal(t, model.CategoryGood, results[0].Category)
	assert.Equal(t, model.CategoryBad, results[1].Category)
	assert.Equal(t, model.CategoryOkay, results[2].Category)
	assert.Equal(t, model.CategoryNoPrice, results[3].Category)
	assert.Nil(t, results[3].DiscountPct)

	assert.Equal(t, 4, summary.TotalItems)
	assert.Equal(t, 1, summary.Counts[model.CategoryGood])
	assert.Equal(t, 1, summary.Counts[model.CategoryNoPrice])
	require.NotEmpty(t, summary.BestDeals)
	assert.Equal(t, "a", summary.BestDeals[0].ItemID)
	assert.Equal(t, "b", summary.WorstDeals[0].ItemID)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(&stubResolver{})
	_, _, err := eng.Analyze(ctx, testItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeEmptyInventory(t *testing.T) {
	eng := New(&stubResolver{})
	results, summary, err := eng.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, summary.TotalItems)
}
