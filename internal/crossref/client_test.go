package crossref

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBibTeX(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/10.1038/nature12373" {
			t.Errorf("request path = %q", req.URL.Path)
		}
		if accept := req.Header.Get("Accept"); !strings.Contains(accept, "style=bibtex") {
			t.Errorf("Accept = %q, want bibtex content negotiation", accept)
		}
		fmt.Fprint(w, " @article{key, title={Nature}}\n")
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	got, err := c.BibTeX(context.Background(), "10.1038/nature12373")
	if err != nil {
		t.Fatalf("BibTeX returned error: %v", err)
	}
	if got != "@article{key, title={Nature}}" {
		t.Errorf("BibTeX = %q, want trimmed citation", got)
	}
}

func TestBibTeXMailto(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("mailto"); got != "dev@example.org" {
			t.Errorf("mailto = %q, want dev@example.org", got)
		}
		fmt.Fprint(w, "@article{key}")
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithMailto("dev@example.org"))
	if _, err := c.BibTeX(context.Background(), "10.1/abc"); err != nil {
		t.Fatalf("BibTeX returned error: %v", err)
	}
}

func TestBibTeXErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "not found", status: http.StatusNotFound, check: IsNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, check: IsRateLimited},
		{name: "server error", status: http.StatusInternalServerError, check: func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode == 500
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			c := NewClient(WithBaseURL(ts.URL))
			_, err := c.BibTeX(context.Background(), "10.1/missing")
			if err == nil {
				t.Fatal("BibTeX returned nil error")
			}
			if !tt.check(err) {
				t.Errorf("error %v does not satisfy predicate", err)
			}
		})
	}
}

func TestBibTeXEmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, "  \n")
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.BibTeX(context.Background(), "10.1/blank")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("BibTeX err = %v, want ErrInvalidResponse", err)
	}
}
