package identifier

import "strings"

// Classify runs every matcher against the input and returns all hits in
// classification order. Formats overlap in shape, so no matcher
// short-circuits the others. An empty result is a normal outcome for
// free text, not an error. Classification never performs I/O.
func Classify(raw string) []Match {
	raw = strings.TrimSpace(raw)

	var matches []Match
	for _, f := range All {
		if id, ok := MatchFormat(f, raw); ok {
			matches = append(matches, Match{Format: f, Normalized: id})
		}
	}
	return matches
}

// Formats extracts just the format tags from a classification result.
func Formats(matches []Match) []Format {
	formats := make([]Format, len(matches))
	for i, m := range matches {
		formats[i] = m.Format
	}
	return formats
}
