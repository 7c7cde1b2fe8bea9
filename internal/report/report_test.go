package report

import (
	"strings"
	"testing"

	"github.com/rishabhm/dealscope/internal/model"
	"github.com/rishabhm/dealscope/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	discount := 80.0
	results := []model.CategoryResult{
		{
			ItemID:      "INV-001",
			Item:        model.InventoryItem{ID: "INV-001", SupplierPrice: 0.75},
			Resolved:    model.ResolvedPrice{Value: 3.75, Source: model.SourceUPCExact},
			DiscountPct: &discount,
			Category:    model.CategoryGood,
		},
		{
			ItemID:   "INV-002",
			Item:     model.InventoryItem{ID: "INV-002", SupplierPrice: 1.10},
			Resolved: model.NotFoundPrice(),
			Category: model.CategoryNoPrice,
		},
	}
	summary := model.NewSummary(results, 10)

	var buf strings.Builder
	err := Write(&buf, summary, resolver.CacheStats{Entries: 2, Hits: 1, Misses: 2, Negative: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total items analyzed: 2")
	assert.Contains(t, out, "INV-001")
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "No Price")
	assert.Contains(t, out, "2 entries (1 negative)")
}

func TestWriteEmptySummary(t *testing.T) {
	var buf strings.Builder
	err := Write(&buf, model.NewSummary(nil, 10), resolver.CacheStats{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Total items analyzed: 0")
}
