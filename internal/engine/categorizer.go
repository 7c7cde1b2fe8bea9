// Package engine drives the per-item analysis pipeline and assigns deal
// categories.
package engine

import "github.com/rishabhm/dealscope/internal/model"

// Discount thresholds. Exactly 75 is GOOD; exactly 60 is OKAY.
const (
	GoodThreshold = 75.0
	OkayThreshold = 60.0
)

// DiscountPercentage computes (retail - supplier) / retail * 100. A
// negative result means the supplier price exceeds retail; that is a valid
// outcome, not an error.
func DiscountPercentage(supplierPrice, retailPrice float64) float64 {
	if retailPrice <= 0 {
		return 0
	}
	return (retailPrice - supplierPrice) / retailPrice * 100
}

// Categorize maps a supplier price and resolved retail price to a category
// result. NOT_FOUND resolutions yield NO_PRICE with a nil discount; every
// other source yields a computed discount, with anything under the okay
// threshold (including negative discounts) landing in BAD.
func Categorize(item model.InventoryItem, resolved model.ResolvedPrice) model.CategoryResult {
	result := model.CategoryResult{
		ItemID:   item.ID,
		Item:     item,
		Resolved: resolved,
	}

	if !resolved.Found() {
		result.Category = model.CategoryNoPrice
		return result
	}

	discount := DiscountPercentage(item.SupplierPrice, resolved.Value)
	result.DiscountPct = &discount

	switch {
	case discount >= GoodThreshold:
		result.Category = model.CategoryGood
	case discount >= OkayThreshold:
		result.Category = model.CategoryOkay
	default:
		result.Category = model.CategoryBad
	}
	return result
}
