// Package model defines the core data types shared across the analyzer.
package model

import (
	"fmt"
	"strings"
	"unicode"
)

// InventoryItem represents a single supplier inventory record.
// Items are immutable once loaded from the source file.
type InventoryItem struct {
	ID            string
	Description   string
	UPC           string // normalized digit string, empty when absent
	QtyAvailable  int
	SupplierPrice float64
}

// Validate checks that an item is usable by the pipeline.
func (i *InventoryItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("inventory item missing ID")
	}
	if strings.TrimSpace(i.Description) == "" {
		return fmt.Errorf("inventory item %s missing description", i.ID)
	}
	if i.SupplierPrice <= 0 {
		return fmt.Errorf("inventory item %s has non-positive supplier price %.2f", i.ID, i.SupplierPrice)
	}
	return nil
}

// CacheKey returns the identity used for price lookups and memoization:
// the normalized UPC when present, otherwise the normalized description.
func (i *InventoryItem) CacheKey() string {
	if i.UPC != "" {
		return "upc:" + i.UPC
	}
	return "desc:" + NormalizeDescription(i.Description)
}

// NormalizeUPC reduces a raw UPC cell to a canonical digit string.
// Spreadsheet exports produce artifacts like "83933263155.0" or "nan";
// anything without at least 8 digits is treated as absent.
func NormalizeUPC(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return ""
	}
	// Drop a trailing ".0" float artifact before filtering.
	raw = strings.TrimSuffix(raw, ".0")

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 8 {
		return ""
	}
	return digits
}

// NormalizeDescription lowercases and collapses whitespace so that two
// records with cosmetically different descriptions share a cache key.
func NormalizeDescription(desc string) string {
	return strings.Join(strings.Fields(strings.ToLower(desc)), " ")
}
