package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/config"
	"github.com/rishabhm/dealscope/internal/engine"
	"github.com/rishabhm/dealscope/internal/fuzzy"
	"github.com/rishabhm/dealscope/internal/ingest"
	"github.com/rishabhm/dealscope/internal/pricing"
	"github.com/rishabhm/dealscope/internal/report"
	"github.com/rishabhm/dealscope/internal/resolver"
	"github.com/rishabhm/dealscope/internal/storage"
	"github.com/rishabhm/dealscope/internal/upcdb"
	"github.com/rishabhm/dealscope/internal/walmart"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a supplier inventory file",
		Long: `Analyze a supplier inventory CSV: resolve a retail reference price for
each item, compute the discount against the supplier price, and write a
results CSV plus a summary report.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("input", "i", "", "inventory CSV to analyze (required)")
	cmd.Flags().StringP("output", "o", "inventory_analysis_results.csv", "results CSV path")
	cmd.Flags().Bool("offline", false, "skip all network lookups, estimate from descriptions only")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("analyze.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("analyze.offline", cmd.Flags().Lookup("offline"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	input, _ := cmd.Flags().GetString("input")
	output := viper.GetString("analyze.output")
	offline := viper.GetBool("analyze.offline")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	cfg, err := config.Load()
	if err != nil {
		return common.NewUserError("configuration error", err)
	}

	items, err := ingest.LoadFile(input)
	if err != nil {
		return common.NewUserError("failed to load inventory", err)
	}
	if len(items) == 0 {
		return common.NewUserError("no analyzable items in inventory file", nil)
	}

	res, cleanup, err := buildResolver(ctx, cfg, offline)
	if err != nil {
		return err
	}
	defer cleanup()

	engineCfg := engine.Config{TopN: cfg.TopN}
	if !noProgress {
		engineCfg.ProgressWriter = os.Stderr
	}

	results, summary, err := engine.NewWithConfig(res, engineCfg).Analyze(ctx, items)
	if err != nil {
		return err
	}

	if err := ingest.ExportFile(output, results); err != nil {
		return common.NewUserError("failed to write results", err)
	}
	slog.Info("Results saved", "path", output)

	return report.Write(cmd.OutOrStdout(), summary, res.CacheStats())
}

// buildResolver wires the lookup cascade from configuration. The returned
// cleanup closes the persistent store when one is attached.
func buildResolver(ctx context.Context, cfg *config.Config, offline bool) (*resolver.Resolver, func(), error) {
	matcher := fuzzy.NewMatcher(fuzzy.WithMultiplier(cfg.FallbackMultiplier))

	opts := []resolver.Option{resolver.WithMatcher(matcher)}
	cleanup := func() {}

	if cfg.CachePath != "" {
		store, err := storage.NewSQLiteStore(cfg.CachePath)
		if err != nil {
			return nil, nil, common.NewUserError("failed to open price cache", err)
		}
		opts = append(opts, resolver.WithStore(ctx, store))
		cleanup = func() { _ = store.Close() }
	}

	if !offline {
		throttle := pricing.NewThrottle(cfg.RateLimitInterval)
		opts = append(opts, resolver.WithUPCLookup(
			upcdb.NewClient(throttle, upcdb.WithTimeout(cfg.LookupTimeout))))

		if cfg.Walmart.Enabled() {
			signer, err := walmart.NewSigner(cfg.Walmart.ConsumerID, cfg.Walmart.PrivateKeyPath, cfg.Walmart.KeyVersion)
			if err != nil {
				cleanup()
				return nil, nil, common.NewUserError("failed to initialize retail API credentials", err)
			}
			opts = append(opts, resolver.WithRetailLookup(
				walmart.NewClient(signer, throttle, walmart.WithTimeout(cfg.LookupTimeout))))
		} else {
			slog.Info("Retail API credentials not configured, skipping that tier")
		}
	} else {
		slog.Info("Offline mode, all lookups come from cache or estimation")
	}

	return resolver.New(opts...), cleanup, nil
}
