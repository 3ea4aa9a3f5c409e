// Package crossref fetches formatted citations for DOIs through doi.org
// content negotiation, which proxies the Crossref (and DataCite) registries.
package crossref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the DOI resolver base URL.
	BaseURL = "https://doi.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is a conservative requests-per-second budget; Crossref
	// asks polite-pool clients to stay well under 50 rps.
	RateLimit = 5.0

	// acceptBibTeX asks the resolver for a BibTeX rendering of the record.
	acceptBibTeX = "text/bibliography; style=bibtex"

	userAgent = "persid-cli"
)

// Client is a rate-limited client for DOI citation lookups.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithMailto sets the contact address sent for polite-pool access.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// NewClient creates a new DOI citation client. PERSID_MAILTO is read
// from the environment as the default polite-pool contact.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if m := os.Getenv("PERSID_MAILTO"); m != "" {
		c.mailto = m
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BibTeX fetches the BibTeX citation for a normalized DOI. The DOI is
// used as the request path unescaped, since slashes are part of it.
func (c *Client) BibTeX(ctx context.Context, doi string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + "/" + doi
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("Accept", acceptBibTeX)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Success
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, doi)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			DOI:        doi,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	citation := strings.TrimSpace(string(body))
	if citation == "" {
		return "", fmt.Errorf("%w: empty body for %s", ErrInvalidResponse, doi)
	}

	return citation, nil
}
