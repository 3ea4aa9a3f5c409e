package resolver

import "errors"

// Resolution failures. All of them are soft: the caller gets a complete
// citation or nothing, never a partial one, and the process never aborts.
var (
	// ErrNoMatch indicates the input matched no known identifier
	// format, the normal outcome for free text.
	ErrNoMatch = errors.New("no recognized identifier format")

	// ErrNoPath indicates a format was recognized but no resolution
	// route is registered for any matched format.
	ErrNoPath = errors.New("no resolution path for matched formats")

	// ErrNoMapping indicates the ID converter produced no DOI, which
	// aborts the citation fetch for that identifier.
	ErrNoMapping = errors.New("no DOI mapping for identifier")
)
