package identifier

import (
	"regexp"
	"strings"
)

// All patterns are anchored so a match must consume the entire input:
// trailing or leading garbage invalidates it. ISBN group sizes are
// variable, so the total digit count is checked after separator
// stripping rather than in the pattern itself.
var (
	isbn10Pattern = regexp.MustCompile(`^(?i:isbn:?\s*)?([0-9]{1,5})[- ]?([0-9]{1,7})[- ]?([0-9]{1,7})[- ]?([0-9xX])$`)
	isbn13Pattern = regexp.MustCompile(`^(?i:isbn:?\s*)?(97[89])[- ]?([0-9]{1,5})[- ]?([0-9]{1,7})[- ]?([0-9]{1,7})[- ]?([0-9])$`)
	issnPattern   = regexp.MustCompile(`^(?i:issn:?\s*)?([0-9]{4})-([0-9]{3}[0-9xX])$`)
	doiPattern    = regexp.MustCompile(`^(?:(?i:doi:?\s*)|https?://doi\.org/)?(10\.[0-9]{4,9}/[-+._;()/:a-zA-Z0-9]+)$`)
	pmidPattern   = regexp.MustCompile(`^(?i:pmid:?\s*)?([1-9][0-9]{0,7})$`)
	pmcidPattern  = regexp.MustCompile(`^(?i:pmcid:?\s*)?(?i:pmc)([1-9][0-9]{0,7})$`)
	arxivPattern  = regexp.MustCompile(`^(?i:arxiv:?\s*)?([0-9]{4}\.[0-9]{4,5}(?:v[0-9]+)?)$`)
)

// MatchISBN10 matches an ISBN-10: an optional "isbn" prefix followed by
// exactly 10 digits once hyphens and spaces are stripped. The check
// position may be the letter X.
func MatchISBN10(raw string) (string, bool) {
	m := isbn10Pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	id := strings.ToUpper(m[1] + m[2] + m[3] + m[4])
	if len(id) != 10 {
		return "", false
	}
	return id, true
}

// MatchISBN13 matches an ISBN-13: the same shape as ISBN-10 but starting
// with the EAN prefix 978 or 979 and totaling exactly 13 digits.
func MatchISBN13(raw string) (string, bool) {
	m := isbn13Pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	id := m[1] + m[2] + m[3] + m[4] + m[5]
	if len(id) != 13 {
		return "", false
	}
	return id, true
}

// MatchISBN tries ISBN-10 first, then ISBN-13, returning the first success.
func MatchISBN(raw string) (string, bool) {
	if id, ok := MatchISBN10(raw); ok {
		return id, ok
	}
	return MatchISBN13(raw)
}

// MatchISSN matches an ISSN: four digits, a hyphen, three digits and a
// check character which may be a digit or X. The hyphen is kept in the
// normalized form, with a trailing x uppercased.
func MatchISSN(raw string) (string, bool) {
	m := issnPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1] + "-" + strings.ToUpper(m[2]), true
}

// MatchDOI matches a DOI with an optional "doi" prefix or doi.org URL
// form. The body pattern covers the vast majority of DOIs in the wild
// but not every syntactically valid one; that is a known limitation.
func MatchDOI(raw string) (string, bool) {
	m := doiPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchPMID matches a PubMed ID: a 1-8 digit number not starting with 0,
// with an optional "pmid" prefix.
func MatchPMID(raw string) (string, bool) {
	m := pmidPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchPMCID matches a PubMed Central ID: a literal PMC followed by a
// 1-8 digit number not starting with 0, with an optional "pmcid" prefix.
// The normalized form keeps the PMC prefix, uppercased.
func MatchPMCID(raw string) (string, bool) {
	m := pmcidPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return "PMC" + m[1], true
}

// MatchArXiv matches a new-style (post 2007-04) arXiv identifier:
// YYMM.NNNNN with an optional version suffix. Legacy archive/NNNNNNN
// identifiers are not supported.
func MatchArXiv(raw string) (string, bool) {
	m := arxivPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchFormat dispatches to the matcher for a single format.
func MatchFormat(f Format, raw string) (string, bool) {
	switch f {
	case FormatISBN:
		return MatchISBN(raw)
	case FormatISSN:
		return MatchISSN(raw)
	case FormatDOI:
		return MatchDOI(raw)
	case FormatPMID:
		return MatchPMID(raw)
	case FormatPMCID:
		return MatchPMCID(raw)
	case FormatArXiv:
		return MatchArXiv(raw)
	}
	return "", false
}
