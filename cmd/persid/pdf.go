package main

import (
	"github.com/spf13/cobra"

	"github.com/rougier/persid/internal/pdfdoi"
)

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "Skip the citation cache")
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Extract a DOI from a PDF and resolve it",
	Long: `Extract a DOI from the first pages of a PDF and resolve it to a
citation, the same way "persid resolve" would.

Examples:
  persid pdf paper.pdf
  persid pdf paper.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	path := args[0]

	doi, err := pdfdoi.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	if doi == "" {
		exitWithError(ExitNoCitation, "no DOI found in %s", path)
	}

	resolveAndOutput(doi)
	return nil
}
