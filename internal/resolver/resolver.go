// Package resolver turns a raw identifier string into a citation by
// classifying it and routing it through the registered lookup services.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rougier/persid/internal/arxiv"
	"github.com/rougier/persid/internal/crossref"
	"github.com/rougier/persid/internal/identifier"
	"github.com/rougier/persid/internal/openalex"
	"github.com/rougier/persid/internal/openlibrary"
	"github.com/rougier/persid/internal/pubmed"
)

// CitationSource fetches a BibTeX citation for a normalized DOI.
type CitationSource interface {
	BibTeX(ctx context.Context, doi string) (string, error)
}

// ExportSource fetches a BibTeX citation for a normalized arXiv ID.
type ExportSource interface {
	BibTeX(ctx context.Context, arxivID string) (string, error)
}

// IDConverter maps a normalized PMID or PMCID to a DOI.
type IDConverter interface {
	Convert(ctx context.Context, id string) (string, error)
}

// BookSource fetches book metadata for a normalized ISBN.
type BookSource interface {
	Lookup(ctx context.Context, isbn string) (*openlibrary.Book, error)
}

// VenueSource fetches venue metadata for a normalized ISSN.
type VenueSource interface {
	Lookup(ctx context.Context, issn string) (*openalex.Venue, error)
}

// Resolver routes classified identifiers to lookup services. A nil
// source means no route is registered for the formats it serves.
type Resolver struct {
	Citations CitationSource
	Converter IDConverter
	Exports   ExportSource
	Books     BookSource
	Venues    VenueSource
}

// New builds a resolver wired to the production services. The mailto
// address, when non-empty, is passed along for polite-pool access.
func New(mailto string) *Resolver {
	return &Resolver{
		Citations: crossref.NewClient(crossref.WithMailto(mailto)),
		Converter: pubmed.NewClient(pubmed.WithEmail(mailto)),
		Exports:   arxiv.NewClient(),
		Books:     openlibrary.NewClient(),
		Venues:    openalex.NewClient(openalex.WithMailto(mailto)),
	}
}

// Route describes the resolution path for a format, for display.
func Route(f identifier.Format) string {
	switch f {
	case identifier.FormatDOI:
		return "doi.org"
	case identifier.FormatPMID, identifier.FormatPMCID:
		return "ncbi idconv + doi.org"
	case identifier.FormatArXiv:
		return "arxiv export"
	case identifier.FormatISBN:
		return "openlibrary"
	case identifier.FormatISSN:
		return "openalex"
	}
	return ""
}

// Commit returns the match the resolver would act on: the first
// classified format with a registered route. Resolution commits to one
// path per call rather than trying all matches and merging, so when a
// string satisfies several formats only the first in classification
// order is used.
func (r *Resolver) Commit(matches []identifier.Match) (identifier.Match, bool) {
	for _, m := range matches {
		if r.hasRoute(m.Format) {
			return m, true
		}
	}
	return identifier.Match{}, false
}

func (r *Resolver) hasRoute(f identifier.Format) bool {
	switch f {
	case identifier.FormatDOI:
		return r.Citations != nil
	case identifier.FormatPMID, identifier.FormatPMCID:
		return r.Converter != nil && r.Citations != nil
	case identifier.FormatArXiv:
		return r.Exports != nil
	case identifier.FormatISBN:
		return r.Books != nil
	case identifier.FormatISSN:
		return r.Venues != nil
	}
	return false
}

// Resolve is the single entry point: classify the raw string, commit to
// the first resolvable format, and fetch the citation. It returns
// ErrNoMatch for unrecognized input, ErrNoPath when nothing matched has
// a route, and ErrNoMapping when a PubMed identifier has no DOI.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	matches := identifier.Classify(raw)
	if len(matches) == 0 {
		return "", ErrNoMatch
	}

	m, ok := r.Commit(matches)
	if !ok {
		return "", ErrNoPath
	}

	return r.ResolveMatch(ctx, m)
}

// ResolveMatch fetches the citation for one committed match.
func (r *Resolver) ResolveMatch(ctx context.Context, m identifier.Match) (string, error) {
	switch m.Format {
	case identifier.FormatDOI:
		return r.Citations.BibTeX(ctx, m.Normalized)

	case identifier.FormatPMID, identifier.FormatPMCID:
		doi, err := r.Converter.Convert(ctx, m.Normalized)
		if err != nil {
			if errors.Is(err, pubmed.ErrNoDOI) {
				return "", fmt.Errorf("%w: %s %s", ErrNoMapping, m.Format, m.Normalized)
			}
			return "", err
		}
		return r.Citations.BibTeX(ctx, doi)

	case identifier.FormatArXiv:
		return r.Exports.BibTeX(ctx, m.Normalized)

	case identifier.FormatISBN:
		book, err := r.Books.Lookup(ctx, m.Normalized)
		if err != nil {
			return "", err
		}
		return book.BibTeX(), nil

	case identifier.FormatISSN:
		venue, err := r.Venues.Lookup(ctx, m.Normalized)
		if err != nil {
			return "", err
		}
		return venue.Describe(), nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoPath, m.Format)
}
