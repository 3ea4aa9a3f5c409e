package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rougier/persid/internal/cache"
	"github.com/rougier/persid/internal/config"
	"github.com/rougier/persid/internal/crossref"
	"github.com/rougier/persid/internal/history"
	"github.com/rougier/persid/internal/identifier"
	"github.com/rougier/persid/internal/resolver"
)

var resolveNoCache bool

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "Skip the citation cache")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>",
	Short: "Resolve a persistent identifier to a citation",
	Long: `Resolve a persistent identifier to a citation.

The identifier may carry a prefix ("doi:", "ISBN:", a doi.org URL) and
separators; it is classified, normalized, and resolved through the
registry for its format:

  DOI          doi.org (BibTeX via content negotiation)
  PMID, PMCID  NCBI ID converter, then doi.org
  arXiv        arXiv BibTeX export (new-style IDs only)
  ISBN         OpenLibrary (rendered as a minimal @book entry)
  ISSN         OpenAlex (venue name and publisher only)

Examples:
  persid resolve 10.1038/nature12373
  persid resolve arxiv:2008.06030
  persid resolve "ISBN 978-0-13-468599-1" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// ResolveResult is the JSON output for the resolve command.
type ResolveResult struct {
	Input    string `json:"input"`
	Format   string `json:"format,omitempty"`
	ID       string `json:"id,omitempty"`
	Route    string `json:"route,omitempty"`
	Citation string `json:"citation,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolveAndOutput(strings.TrimSpace(args[0]))
	return nil
}

// resolveAndOutput runs the full resolution pipeline for one raw input
// string and prints the result. Shared by resolve and pdf.
func resolveAndOutput(raw string) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitUsageError, "loading config: %v", err)
	}
	dataDir := cfg.ResolvedDataDir()

	// History records what was entered, resolvable or not.
	if dataDir != "" {
		_ = history.Append(config.HistoryPath(dataDir), history.Entry{
			Raw:       raw,
			EnteredAt: time.Now().UTC(),
		})
	}

	matches := identifier.Classify(raw)
	if len(matches) == 0 {
		exitWithError(ExitNoCitation, "no recognized identifier format: %q", raw)
	}

	res := resolver.New(config.GetMailto())
	committed, ok := res.Commit(matches)
	if !ok {
		exitWithError(ExitNoCitation, "no resolution path for: %q", raw)
	}

	result := ResolveResult{
		Input:  raw,
		Format: string(committed.Format),
		ID:     committed.Normalized,
		Route:  resolver.Route(committed.Format),
	}

	var store *cache.Cache
	if !resolveNoCache && !cfg.NoCache && dataDir != "" {
		if store, err = cache.Open(config.CachePath(dataDir)); err == nil {
			defer store.Close()
			if citation, hit, err := store.Get(result.Format, result.ID); err == nil && hit {
				result.Citation = citation
				result.Cached = true
				outputResolveResult(result)
				return
			}
		}
	}

	citation, err := res.ResolveMatch(context.Background(), committed)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrNoMapping):
			exitWithError(ExitNoCitation, "no DOI mapping for %s %s", result.Format, result.ID)
		case crossref.IsRateLimited(err):
			exitWithError(ExitAPIError, "rate limited: %v", err)
		default:
			exitWithError(ExitAPIError, "resolving %s %s: %v", result.Format, result.ID, err)
		}
	}

	if store != nil {
		_ = store.Put(result.Format, result.ID, citation)
	}

	result.Citation = citation
	outputResolveResult(result)
}

func outputResolveResult(result ResolveResult) {
	if humanOutput {
		fmt.Println(result.Citation)
		return
	}
	outputJSON(result)
}
