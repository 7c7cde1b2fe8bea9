package fuzzy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rishabhm/dealscope/internal/model"
)

// DefaultMultiplier is the supplier-price markup used when no other signal
// is available. Closeout suppliers typically list at a quarter of retail.
const DefaultMultiplier = 4.0

// Entry maps a set of keywords to a known retail price. Every term must
// appear in the description (case-insensitive substring) for the entry to
// match.
type Entry struct {
	Terms []string
	Price float64
}

// weight is the total keyword length, used for longest-keyword-wins.
func (e Entry) weight() int {
	n := 0
	for _, t := range e.Terms {
		n += len(t)
	}
	return n
}

// Matcher estimates a retail price from a description through ordered
// tiers: brand table, category table, embedded price extraction, and a
// supplier-price multiplier as the guaranteed last resort. Estimate never
// fails.
type Matcher struct {
	brands     []Entry
	categories []Entry
	multiplier float64
}

// Option customizes a Matcher.
type Option func(*Matcher)

// WithBrands replaces the brand price table.
func WithBrands(entries []Entry) Option {
	return func(m *Matcher) { m.brands = entries }
}

// WithCategories replaces the category price table.
func WithCategories(entries []Entry) Option {
	return func(m *Matcher) { m.categories = entries }
}

// WithMultiplier replaces the fallback supplier-price multiplier.
func WithMultiplier(mult float64) Option {
	return func(m *Matcher) {
		if mult > 0 {
			m.multiplier = mult
		}
	}
}

// NewMatcher creates a matcher with the default tables.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		brands:     defaultBrands,
		categories: defaultCategories,
		multiplier: DefaultMultiplier,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var priceRe = regexp.MustCompile(`\$(\d+\.?\d*)`)

// Estimate produces a price for a description. Brand and category table
// hits are FUZZY_MATCH; an embedded dollar amount in the description also
// counts as FUZZY_MATCH since it reflects observed data. The multiplier
// fallback is FUZZY_FALLBACK, the lowest-confidence outcome.
func (m *Matcher) Estimate(description string, supplierPrice float64) model.ResolvedPrice {
	lower := strings.ToLower(description)

	if price, ok := matchTable(m.brands, lower); ok {
		return model.ResolvedPrice{Value: price, Source: model.SourceFuzzyMatch}
	}
	if price, ok := matchTable(m.categories, lower); ok {
		return model.ResolvedPrice{Value: price, Source: model.SourceFuzzyMatch}
	}
	if price, ok := extractEmbeddedPrice(description); ok {
		return model.ResolvedPrice{Value: price, Source: model.SourceFuzzyMatch}
	}

	return model.ResolvedPrice{
		Value:  supplierPrice * m.multiplier,
		Source: model.SourceFuzzyFallback,
	}
}

// matchTable returns the price of the longest matching entry. Ties go to
// the entry listed first, keeping results deterministic.
func matchTable(entries []Entry, lower string) (float64, bool) {
	bestWeight := -1
	var bestPrice float64
	for _, e := range entries {
		if !e.matches(lower) || e.Price <= 0 {
			continue
		}
		if w := e.weight(); w > bestWeight {
			bestWeight = w
			bestPrice = e.Price
		}
	}
	return bestPrice, bestWeight >= 0
}

func (e Entry) matches(lower string) bool {
	if len(e.Terms) == 0 {
		return false
	}
	for _, t := range e.Terms {
		if !strings.Contains(lower, strings.ToLower(t)) {
			return false
		}
	}
	return true
}

// extractEmbeddedPrice pulls a dollar amount out of the description text.
func extractEmbeddedPrice(description string) (float64, bool) {
	match := priceRe.FindStringSubmatch(description)
	if match == nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(match[1], 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
