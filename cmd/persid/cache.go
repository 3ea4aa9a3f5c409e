package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rougier/persid/internal/cache"
	"github.com/rougier/persid/internal/config"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the citation cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and entry count",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached citations",
	RunE:  runCacheClear,
}

// CacheInfoResult is the JSON output for the cache info command.
type CacheInfoResult struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

func openCache() (*cache.Cache, string) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitUsageError, "loading config: %v", err)
	}
	dataDir := cfg.ResolvedDataDir()
	if dataDir == "" {
		exitWithError(ExitUsageError, "no data directory available")
	}

	path := config.CachePath(dataDir)
	store, err := cache.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return store, path
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	store, path := openCache()
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		exitWithError(ExitError, "reading cache: %v", err)
	}

	if humanOutput {
		fmt.Printf("Cache: %s (%d entries)\n", path, count)
		return nil
	}
	return outputJSON(CacheInfoResult{Path: path, Entries: count})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, _ := openCache()
	defer store.Close()

	if err := store.Clear(); err != nil {
		exitWithError(ExitError, "clearing cache: %v", err)
	}

	if humanOutput {
		fmt.Println("Cache cleared.")
		return nil
	}
	return outputJSON(map[string]bool{"cleared": true})
}
