package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rougier/persid/internal/config"
	"github.com/rougier/persid/internal/history"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show only the last N entries (0 = all)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously entered identifiers",
	Long: `List previously entered identifiers, oldest first.

Every string passed to "persid resolve" is recorded, whether or not it
resolved. The history is an append-only log with no deduplication.`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the identifier history",
	RunE:  runHistoryClear,
}

// HistoryResult is the JSON output for the history command.
type HistoryResult struct {
	Entries []HistoryEntry `json:"entries"`
}

// HistoryEntry is one recorded input in history output.
type HistoryEntry struct {
	Raw       string    `json:"raw"`
	EnteredAt time.Time `json:"entered_at"`
}

func historyPath() string {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitUsageError, "loading config: %v", err)
	}
	dataDir := cfg.ResolvedDataDir()
	if dataDir == "" {
		exitWithError(ExitUsageError, "no data directory available")
	}
	return config.HistoryPath(dataDir)
}

func runHistory(cmd *cobra.Command, args []string) error {
	entries, err := history.Load(historyPath())
	if err != nil {
		exitWithError(ExitError, "loading history: %v", err)
	}

	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	result := HistoryResult{Entries: []HistoryEntry{}}
	for _, e := range entries {
		result.Entries = append(result.Entries, HistoryEntry{Raw: e.Raw, EnteredAt: e.EnteredAt})
	}

	if humanOutput {
		if len(result.Entries) == 0 {
			fmt.Println("History is empty.")
			return nil
		}
		for _, e := range result.Entries {
			fmt.Printf("%s  %s\n", e.EnteredAt.Local().Format("2006-01-02 15:04"), e.Raw)
		}
		return nil
	}

	return outputJSON(result)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := history.Clear(historyPath()); err != nil {
		exitWithError(ExitError, "clearing history: %v", err)
	}

	if humanOutput {
		fmt.Println("History cleared.")
		return nil
	}
	return outputJSON(map[string]bool{"cleared": true})
}
