package model

import "sort"

// Category is the deal-quality label assigned to an item.
type Category string

// Deal categories. NO_PRICE marks items the pipeline could not price at all.
const (
	CategoryGood    Category = "Good Price"
	CategoryOkay    Category = "Okay Price"
	CategoryBad     Category = "Bad Price"
	CategoryNoPrice Category = "No Price"
)

// CategoryResult pairs an inventory item with its resolved price and label.
// DiscountPct is nil exactly when the price source is NOT_FOUND.
type CategoryResult struct {
	ItemID      string
	Item        InventoryItem
	Resolved    ResolvedPrice
	DiscountPct *float64
	Category    Category
}

// Summary aggregates one analysis pass.
type Summary struct {
	TotalItems int
	Counts     map[Category]int
	BestDeals  []CategoryResult
	WorstDeals []CategoryResult
}

// NewSummary builds a summary from results in input order. Best and worst
// lists consider only priced results and are truncated to topN entries each.
func NewSummary(results []CategoryResult, topN int) Summary {
	s := Summary{
		TotalItems: len(results),
		Counts:     make(map[Category]int),
	}

	priced := make([]CategoryResult, 0, len(results))
	for _, r := range results {
		s.Counts[r.Category]++
		if r.DiscountPct != nil {
			priced = append(priced, r)
		}
	}

	best := make([]CategoryResult, len(priced))
	copy(best, priced)
	sort.SliceStable(best, func(i, j int) bool {
		return *best[i].DiscountPct > *best[j].DiscountPct
	})

	worst := make([]CategoryResult, len(priced))
	copy(worst, priced)
	sort.SliceStable(worst, func(i, j int) bool {
		return *worst[i].DiscountPct < *worst[j].DiscountPct
	})

	if len(best) > topN {
		best = best[:topN]
	}
	if len(worst) > topN {
		worst = worst[:topN]
	}
	s.BestDeals = best
	s.WorstDeals = worst

	return s
}
