package model

// PriceSource identifies which tier of the lookup cascade produced a price.
type PriceSource string

// Price sources, ordered from most to least authoritative.
const (
	SourceUPCExact      PriceSource = "UPC_EXACT"
	SourceRetailAPI     PriceSource = "RETAIL_API"
	SourceFuzzyMatch    PriceSource = "FUZZY_MATCH"
	SourceFuzzyFallback PriceSource = "FUZZY_FALLBACK"
	SourceNotFound      PriceSource = "NOT_FOUND"
)

// Confidence returns an ordinal rank for a source, higher is better.
// NOT_FOUND ranks zero.
func (s PriceSource) Confidence() int {
	switch s {
	case SourceUPCExact:
		return 4
	case SourceRetailAPI:
		return 3
	case SourceFuzzyMatch:
		return 2
	case SourceFuzzyFallback:
		return 1
	default:
		return 0
	}
}

// ResolvedPrice is the outcome of price resolution for one item.
// Value is always positive unless Source is NOT_FOUND.
type ResolvedPrice struct {
	Value     float64
	Source    PriceSource
	SourceURL string // market comp link when a live lookup supplied one
}

// Found reports whether the resolution produced a usable price.
func (p ResolvedPrice) Found() bool {
	return p.Source != SourceNotFound && p.Value > 0
}

// NotFoundPrice is the sentinel result for a disabled or exhausted pipeline.
func NotFoundPrice() ResolvedPrice {
	return ResolvedPrice{Source: SourceNotFound}
}
