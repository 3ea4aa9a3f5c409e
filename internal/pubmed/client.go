// Package pubmed converts PubMed identifiers (PMID, PMCID) to DOIs using
// the NCBI PMC ID Converter service.
package pubmed

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
	// BaseURL is the NCBI ID Converter endpoint.
	BaseURL = "https://www.ncbi.nlm.nih.gov/pmc/utils/idconv/v1.0/"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is 3 requests per second, the NCBI limit for
	// unauthenticated clients.
	RateLimit = 3.0

	// toolName identifies this client to NCBI, as the E-utilities
	// usage policy requests.
	toolName = "persid"
)

// Errors returned by the converter client.
var (
	// ErrNoDOI indicates the converter returned no usable DOI for the
	// identifier. This is a normal, reportable outcome.
	ErrNoDOI = errors.New("no DOI mapping in converter response")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ID converter")

	// ErrAPIError indicates a non-2xx converter response.
	ErrAPIError = errors.New("ID converter error")

	// ErrInvalidResponse indicates an unparseable converter payload.
	ErrInvalidResponse = errors.New("invalid response from ID converter")
)

// Client is a rate-limited client for the NCBI ID Converter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	email      string
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

// WithEmail sets the contact address sent with converter requests.
func WithEmail(email string) ClientOption {
	return func(c *Client) {
		c.email = email
	}
}

// NewClient creates a new ID converter client. PERSID_MAILTO is read
// from the environment as the default contact address.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if m := os.Getenv("PERSID_MAILTO"); m != "" {
		c.email = m
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// convResponse is the JSON shape of a converter response.
type convResponse struct {
	Records []convRecord `json:"records"`
}

// convRecord is one conversion record. Any of the identifier fields may
// be absent.
type convRecord struct {
	PMID  string `json:"pmid"`
	PMCID string `json:"pmcid"`
	DOI   string `json:"doi"`
}

// Convert maps a normalized PMID (digits) or PMCID (PMC + digits) to a
// DOI, using the first returned record. Returns ErrNoDOI when the
// service has no mapping.
func (c *Client) Convert(ctx context.Context, id string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s?ids=%s&format=json&tool=%s", c.baseURL, url.QueryEscape(id), toolName)
	if c.email != "" {
		reqURL += "&email=" + url.QueryEscape(c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrAPIError, resp.StatusCode)
	}

	var conv convResponse
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(conv.Records) == 0 || conv.Records[0].DOI == "" {
		return "", fmt.Errorf("%w: %s", ErrNoDOI, id)
	}

	return conv.Records[0].DOI, nil
}
