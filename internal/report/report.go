package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rishabhm/dealscope/internal/model"
	"github.com/rishabhm/dealscope/internal/resolver"
)

// Write renders the run summary: category counts with percentages, the best
// deals, the worst deals, and cache activity.
func Write(w io.Writer, summary model.Summary, stats resolver.CacheStats) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Inventory Analysis Report"))
	b.WriteString("\n")

	total := summary.TotalItems
	b.WriteString(fmt.Sprintf("Total items analyzed: %d\n", total))
	if total > 0 {
		writeCount(&b, goodStyle, "Good Price (>=75% off)", summary.Counts[model.CategoryGood], total)
		writeCount(&b, okayStyle, "Okay Price (60-75% off)", summary.Counts[model.CategoryOkay], total)
		writeCount(&b, badStyle, "Bad Price (<60% off)", summary.Counts[model.CategoryBad], total)
		if n := summary.Counts[model.CategoryNoPrice]; n > 0 {
			writeCount(&b, subtleStyle, "No Price", n, total)
		}
	}

	writeDeals(&b, "Best Deals (highest discount)", summary.BestDeals)
	writeDeals(&b, "Worst Deals (lowest discount)", summary.WorstDeals)

	b.WriteString(sectionStyle.Render("Cache"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf(
		"  %d entries (%d negative), %d hits, %d network resolutions",
		stats.Entries, stats.Negative, stats.Hits, stats.Misses)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCount(b *strings.Builder, style lipgloss.Style, label string, count, total int) {
	pct := float64(count) / float64(total) * 100
	b.WriteString(style.Render(fmt.Sprintf("  %-26s %4d (%.1f%%)", label+":", count, pct)))
	b.WriteString("\n")
}

func writeDeals(b *strings.Builder, heading string, deals []model.CategoryResult) {
	if len(deals) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n")
	for _, d := range deals {
		line := fmt.Sprintf("  %-12s %5.1f%% off  $%.2f -> $%.2f  %s",
			d.Item.ID, *d.DiscountPct, d.Item.SupplierPrice, d.Resolved.Value, d.Category)
		b.WriteString(styleFor(d.Category).Render(line))
		b.WriteString("\n")
	}
}

func styleFor(c model.Category) lipgloss.Style {
	switch c {
	case model.CategoryGood:
		return goodStyle
	case model.CategoryOkay:
		return okayStyle
	case model.CategoryBad:
		return badStyle
	default:
		return subtleStyle
	}
}
