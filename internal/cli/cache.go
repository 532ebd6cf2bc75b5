package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polycover/polycover/pkg/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}
	cmd.AddCommand(newCacheInfoCmd())
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show result cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.cacheDir()
			store, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, bytes, err := store.(*cache.FileCache).Size()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "directory: %s\nentries: %d\nsize: %d bytes\n", dir, count, bytes)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := cache.NewFileCache(cfg.cacheDir())
			if err != nil {
				return err
			}
			if err := store.(*cache.FileCache).Clear(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Result cache cleared", "dir", cfg.cacheDir())
			return nil
		},
	}
}
