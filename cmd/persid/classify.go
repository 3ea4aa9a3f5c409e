package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rougier/persid/internal/identifier"
	"github.com/rougier/persid/internal/resolver"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <string>",
	Short: "Show which identifier formats a string matches",
	Long: `Show which identifier formats a string matches, without any network
access. A string may match more than one format; the resolver commits
to the first listed. An empty result means the string is not a
recognized identifier.

Examples:
  persid classify 10.1000/xyz123
  persid classify "ISBN 978-0-13-468599-1"
  persid classify 2008.06030 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

// ClassifyResult is the JSON output for the classify command.
type ClassifyResult struct {
	Input   string          `json:"input"`
	Matches []ClassifyMatch `json:"matches"`
}

// ClassifyMatch is one recognized format in classify output.
type ClassifyMatch struct {
	Format string `json:"format"`
	ID     string `json:"id"`
	Route  string `json:"route,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	raw := strings.TrimSpace(args[0])
	matches := identifier.Classify(raw)

	result := ClassifyResult{Input: raw, Matches: []ClassifyMatch{}}
	for _, m := range matches {
		result.Matches = append(result.Matches, ClassifyMatch{
			Format: string(m.Format),
			ID:     m.Normalized,
			Route:  resolver.Route(m.Format),
		})
	}

	if humanOutput {
		if len(result.Matches) == 0 {
			fmt.Printf("No recognized identifier format: %q\n", raw)
			return nil
		}
		for _, m := range result.Matches {
			fmt.Printf("%-8s %-20s via %s\n", m.Format, m.ID, m.Route)
		}
		return nil
	}

	return outputJSON(result)
}
