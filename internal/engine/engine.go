package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rishabhm/dealscope/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Resolver is the price resolution dependency. It must be total: one
// ResolvedPrice per item, never an error.
type Resolver interface {
	Resolve(ctx context.Context, item model.InventoryItem) model.ResolvedPrice
}

// Config holds configuration options for the analysis engine.
type Config struct {
	TopN           int
	ProgressWriter io.Writer // nil disables the progress bar
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{TopN: 10}
}

// AnalysisEngine runs one pass over an inventory, resolving and
// categorizing each item.
type AnalysisEngine struct {
	resolver Resolver
	config   Config
}

// New creates an analysis engine with default configuration.
func New(resolver Resolver) *AnalysisEngine {
	return NewWithConfig(resolver, DefaultConfig())
}

// NewWithConfig creates an analysis engine with custom configuration.
func NewWithConfig(resolver Resolver, config Config) *AnalysisEngine {
	if config.TopN <= 0 {
		config.TopN = 10
	}
	return &AnalysisEngine{resolver: resolver, config: config}
}

// Analyze processes every item sequentially and returns one result per item
// in input order, plus the run summary. Items are independent; a failure to
// price one item never stops the pass. Only context cancellation aborts.
func (e *AnalysisEngine) Analyze(ctx context.Context, items []model.InventoryItem) ([]model.CategoryResult, model.Summary, error) {
	slog.Info("Starting inventory analysis", "items", len(items))

	var bar *progressbar.ProgressBar
	if e.config.ProgressWriter != nil {
		bar = progressbar.NewOptions(len(items),
			progressbar.OptionSetWriter(e.config.ProgressWriter),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Analyzing inventory..."),
		)
	}

	results := make([]model.CategoryResult, 0, len(items))
	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, model.Summary{}, fmt.Errorf("analysis canceled: %w", ctx.Err())
		default:
		}

		resolved := e.resolver.Resolve(ctx, item)
		result := Categorize(item, resolved)
		results = append(results, result)

		slog.Debug("Categorized item",
			"item", item.ID,
			"supplier_price", item.SupplierPrice,
			"retail_price", resolved.Value,
			"source", resolved.Source,
			"category", result.Category)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	summary := model.NewSummary(results, e.config.TopN)

	slog.Info("Analysis complete",
		"total", summary.TotalItems,
		"good", summary.Counts[model.CategoryGood],
		"okay", summary.Counts[model.CategoryOkay],
		"bad", summary.Counts[model.CategoryBad],
		"no_price", summary.Counts[model.CategoryNoPrice])

	return results, summary, nil
}
