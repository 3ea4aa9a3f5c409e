// Package arxiv fetches BibTeX citations from the arXiv export endpoint.
package arxiv

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the arXiv BibTeX export endpoint.
	BaseURL = "https://arxiv.org/bibtex"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit follows the arXiv API guidance of roughly one request
	// every three seconds.
	RateLimit = 1.0 / 3.0

	// The export page embeds the record, percent-encoded, inside a
	// textarea. The record starts at the entry marker and runs to the
	// closing tag.
	startMarker = "@"
	endMarker   = "</textarea>"
)

// Errors returned by the export client.
var (
	// ErrNotFound indicates the identifier is unknown to arXiv.
	ErrNotFound = errors.New("identifier not found on arXiv")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with arXiv")

	// ErrAPIError indicates a non-2xx export response.
	ErrAPIError = errors.New("arXiv export error")

	// ErrInvalidResponse indicates the export document carried no
	// recognizable citation block.
	ErrInvalidResponse = errors.New("no citation block in arXiv response")
)

// Client fetches BibTeX records for arXiv identifiers.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
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

// NewClient creates a new arXiv export client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BibTeX fetches and decodes the citation for a normalized new-style
// arXiv identifier (legacy pre-2007 identifiers are not supported).
func (c *Client) BibTeX(ctx context.Context, arxivID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+arxivID, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Success
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, arxivID)
	default:
		return "", fmt.Errorf("%w: HTTP %d", ErrAPIError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	return extractCitation(string(body), arxivID)
}

// extractCitation pulls the citation block out of an export document:
// the region between the entry marker and the closing textarea tag,
// percent-decoded and with markup entities resolved. A response with no
// closing tag is taken as a bare record.
func extractCitation(body, arxivID string) (string, error) {
	start := strings.Index(body, startMarker)
	if start < 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidResponse, arxivID)
	}

	block := body[start:]
	if end := strings.Index(block, endMarker); end >= 0 {
		block = block[:end]
	}

	if decoded, err := url.PathUnescape(block); err == nil {
		block = decoded
	}

	return strings.TrimSpace(html.UnescapeString(block)), nil
}
