package main

import (
	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/config"
	"github.com/rishabhm/dealscope/internal/storage"
	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persisted price cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show persisted cache entry count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("%d cached price resolutions\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all persisted cache entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Cleared %d cached price resolutions\n", n)
			return nil
		},
	})

	return cmd
}

func openStore() (*storage.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, common.NewUserError("configuration error", err)
	}
	if cfg.CachePath == "" {
		return nil, common.NewUserError("no cache.path configured; the cache is in-memory only", nil)
	}

	store, err := storage.NewSQLiteStore(cfg.CachePath)
	if err != nil {
		return nil, common.NewUserError("failed to open price cache", err)
	}
	return store, nil
}
