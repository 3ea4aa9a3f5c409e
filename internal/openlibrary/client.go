// Package openlibrary looks up book metadata by ISBN through the
// OpenLibrary Books API.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenLibrary base URL.
	BaseURL = "https://openlibrary.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is a conservative requests-per-second budget.
	RateLimit = 5.0
)

// Errors returned by the book client.
var (
	// ErrNotFound indicates OpenLibrary has no record for the ISBN.
	// Coverage is known to be sparse; this is a common outcome.
	ErrNotFound = errors.New("ISBN not found on OpenLibrary")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with OpenLibrary")

	// ErrAPIError indicates a non-2xx response.
	ErrAPIError = errors.New("OpenLibrary API error")

	// ErrInvalidResponse indicates an unparseable payload.
	ErrInvalidResponse = errors.New("invalid response from OpenLibrary")
)

// Book is the structured result of an ISBN lookup.
type Book struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Publishers  []string `json:"publishers,omitempty"`
	ISBN        string   `json:"isbn"`
	URL         string   `json:"url,omitempty"`
}

// bookData is the JSON shape of one record in a Books API response.
type bookData struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	URL         string `json:"url"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
}

// Client is a rate-limited client for the OpenLibrary Books API.
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

// NewClient creates a new OpenLibrary client.
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

// Lookup fetches book data for a normalized ISBN (10 or 13 digits,
// separators stripped). The response is keyed by "ISBN:<n>"; a missing
// key means OpenLibrary has no record.
func (c *Client) Lookup(ctx context.Context, isbn string) (*Book, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	key := "ISBN:" + isbn
	reqURL := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data", c.baseURL, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrAPIError, resp.StatusCode)
	}

	var records map[string]bookData
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	data, ok := records[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, isbn)
	}

	book := &Book{
		Title:       data.Title,
		PublishDate: data.PublishDate,
		ISBN:        isbn,
		URL:         data.URL,
	}
	for _, a := range data.Authors {
		book.Authors = append(book.Authors, a.Name)
	}
	for _, p := range data.Publishers {
		book.Publishers = append(book.Publishers, p.Name)
	}

	return book, nil
}

// yearPattern extracts the first 4-digit year from a publish date.
var yearPattern = regexp.MustCompile(`\d{4}`)

// BibTeX renders the book as a minimal BibTeX entry keyed by its ISBN.
func (b *Book) BibTeX() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "@book{%s,\n", b.ISBN)
	fmt.Fprintf(&sb, "  title     = {%s},\n", b.Title)
	if len(b.Authors) > 0 {
		fmt.Fprintf(&sb, "  author    = {%s},\n", strings.Join(b.Authors, " and "))
	}
	if year := yearPattern.FindString(b.PublishDate); year != "" {
		fmt.Fprintf(&sb, "  year      = {%s},\n", year)
	}
	if len(b.Publishers) > 0 {
		fmt.Fprintf(&sb, "  publisher = {%s},\n", strings.Join(b.Publishers, " and "))
	}
	fmt.Fprintf(&sb, "  isbn      = {%s},\n", b.ISBN)
	if b.URL != "" {
		fmt.Fprintf(&sb, "  url       = {%s},\n", b.URL)
	}
	sb.WriteString("}")

	return sb.String()
}
