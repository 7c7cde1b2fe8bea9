// Package fuzzy estimates retail prices from free-text product descriptions
// when structured lookups fail.
package fuzzy

import (
	"regexp"
	"strings"
)

// maxQueryLength caps cleaned names before they hit a search API.
const maxQueryLength = 100

var (
	expiryRe = regexp.MustCompile(`(?i)\s+(BEST BY|BB|EXP|EXPIRES).*`)
	dateRe   = regexp.MustCompile(`\s+\d+/\d+/\d+.*`)
	countRe  = regexp.MustCompile(`(?i)\s+\d+CT\s*`)
	sizeRe   = regexp.MustCompile(`(?i)\s+\d+(\.\d+)?oz\s*`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// CleanName strips supplier-listing noise (expiry notes, dates, pack counts,
// sizes) from a description so it searches well.
func CleanName(name string) string {
	if name == "" {
		return ""
	}

	cleaned := expiryRe.ReplaceAllString(name, "")
	cleaned = dateRe.ReplaceAllString(cleaned, "")
	cleaned = countRe.ReplaceAllString(cleaned, " ")
	cleaned = sizeRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
	}
	return cleaned
}
