// Package main provides the persid CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "persid",
	Short: "Resolve persistent identifiers to citations",
	Long: `persid resolves scholarly persistent identifiers to citations.

It recognizes ISBN, ISSN, DOI, PMID, PMCID, and arXiv identifiers from
free-form input, normalizes them, and queries the matching registry
(doi.org, NCBI, arXiv, OpenLibrary, OpenAlex) for a citation. Commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
