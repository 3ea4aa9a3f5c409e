package pubmed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConvert(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if got := q.Get("ids"); got != "19872477" {
			t.Errorf("ids = %q", got)
		}
		if got := q.Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		if got := q.Get("tool"); got != "persid" {
			t.Errorf("tool = %q, want persid", got)
		}
		fmt.Fprint(w, `{"records":[{"pmid":"19872477","pmcid":"PMC2323736","doi":"10.1093/nar/gkp1137"}]}`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	got, err := c.Convert(context.Background(), "19872477")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != "10.1093/nar/gkp1137" {
		t.Errorf("Convert = %q", got)
	}
}

func TestConvertPMCID(t *testing.T) {
	// PMCID goes through the same converter call as PMID.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("ids"); got != "PMC2323736" {
			t.Errorf("ids = %q, want PMC2323736", got)
		}
		fmt.Fprint(w, `{"records":[{"pmcid":"PMC2323736","doi":"10.1/abc"}]}`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	got, err := c.Convert(context.Background(), "PMC2323736")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != "10.1/abc" {
		t.Errorf("Convert = %q", got)
	}
}

func TestConvertNoMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero records", body: `{"records":[]}`},
		{name: "record without doi", body: `{"records":[{"pmid":"12345678"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			c := NewClient(WithBaseURL(ts.URL))
			_, err := c.Convert(context.Background(), "12345678")
			if !errors.Is(err, ErrNoDOI) {
				t.Errorf("Convert err = %v, want ErrNoDOI", err)
			}
		})
	}
}

func TestConvertAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.Convert(context.Background(), "12345678")
	if !errors.Is(err, ErrAPIError) {
		t.Errorf("Convert err = %v, want ErrAPIError", err)
	}
}

func TestConvertEmail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("email"); got != "dev@example.org" {
			t.Errorf("email = %q, want dev@example.org", got)
		}
		fmt.Fprint(w, `{"records":[{"doi":"10.1/abc"}]}`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithEmail("dev@example.org"))
	if _, err := c.Convert(context.Background(), "12345678"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
}
