// Package pdfdoi extracts DOIs from PDF documents so a paper can be
// resolved straight from a file.
package pdfdoi

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rougier/persid/internal/identifier"
)

// doiScanPattern finds DOI-shaped regions in page text. Candidates are
// re-validated with the strict DOI matcher after trimming trailing
// punctuation that page text tends to glue on.
var doiScanPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// maxScanPages limits extraction to the first pages; the DOI is almost
// always on the first one.
const maxScanPages = 3

// ExtractDOI extracts a DOI from a PDF file. Returns an empty string
// (not an error) when no DOI is found.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := maxScanPages
	if r.NumPage() < pages {
		pages = r.NumPage()
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// FindDOI finds the first valid DOI in free text.
func FindDOI(text string) string {
	for _, candidate := range doiScanPattern.FindAllString(text, -1) {
		candidate = strings.TrimRight(candidate, ".,;:)")
		if doi, ok := identifier.MatchDOI(candidate); ok {
			return doi
		}
	}
	return ""
}
