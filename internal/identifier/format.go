// Package identifier recognizes and normalizes scholarly persistent
// identifiers (ISBN, ISSN, DOI, PMID, PMCID, arXiv) from free-form input.
package identifier

// Format is a persistent identifier family. The set is closed.
type Format string

const (
	FormatISBN  Format = "isbn"
	FormatISSN  Format = "issn"
	FormatDOI   Format = "doi"
	FormatPMID  Format = "pmid"
	FormatPMCID Format = "pmcid"
	FormatArXiv Format = "arxiv"
)

// All lists every format in classification order. The resolver commits
// to the first resolvable format in this order, so the order is part of
// the observable behavior and must not be reshuffled.
var All = []Format{
	FormatISBN,
	FormatISSN,
	FormatDOI,
	FormatPMID,
	FormatPMCID,
	FormatArXiv,
}

// Match pairs a recognized format with its normalized identifier, the
// canonical form expected by the corresponding registry.
type Match struct {
	Format     Format `json:"format"`
	Normalized string `json:"id"`
}
