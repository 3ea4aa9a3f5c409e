// Package openalex looks up journal venue information by ISSN through
// the OpenAlex sources API.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenAlex API base URL.
	BaseURL = "https://api.openalex.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is 10 requests per second, the OpenAlex published limit.
	RateLimit = 10.0
)

// Errors returned by the venue client.
var (
	// ErrNotFound indicates OpenAlex has no source for the ISSN.
	ErrNotFound = errors.New("ISSN not found on OpenAlex")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with OpenAlex")

	// ErrAPIError indicates a non-2xx response.
	ErrAPIError = errors.New("OpenAlex API error")

	// ErrInvalidResponse indicates an unparseable payload.
	ErrInvalidResponse = errors.New("invalid response from OpenAlex")
)

// Venue describes a journal: its display name and publisher. This is
// metadata only, not a full citation.
type Venue struct {
	Name      string `json:"name"`
	Publisher string `json:"publisher,omitempty"`
}

// Describe renders the venue as a short "name (publisher)" string.
func (v *Venue) Describe() string {
	if v.Publisher == "" {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Name, v.Publisher)
}

// sourceData is the JSON shape of an OpenAlex source record.
type sourceData struct {
	DisplayName          string `json:"display_name"`
	HostOrganizationName string `json:"host_organization_name"`
}

// Client is a rate-limited client for the OpenAlex sources API.
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

// NewClient creates a new OpenAlex client. PERSID_MAILTO is read from
// the environment as the default polite-pool contact.
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

// Lookup fetches venue information for a normalized ISSN (dddd-dddC).
func (c *Client) Lookup(ctx context.Context, issn string) (*Venue, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/sources/issn:%s", c.baseURL, issn)
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Success
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, issn)
	default:
		return nil, fmt.Errorf("%w: HTTP %d", ErrAPIError, resp.StatusCode)
	}

	var src sourceData
	if err := json.NewDecoder(resp.Body).Decode(&src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if src.DisplayName == "" {
		return nil, fmt.Errorf("%w: no display name for %s", ErrInvalidResponse, issn)
	}

	return &Venue{
		Name:      src.DisplayName,
		Publisher: src.HostOrganizationName,
	}, nil
}
