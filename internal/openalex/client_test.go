package openalex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/sources/issn:0028-0836" {
			t.Errorf("request path = %q", req.URL.Path)
		}
		fmt.Fprint(w, `{"display_name":"Nature","host_organization_name":"Springer Nature"}`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	venue, err := c.Lookup(context.Background(), "0028-0836")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if venue.Name != "Nature" || venue.Publisher != "Springer Nature" {
		t.Errorf("Lookup = %+v", venue)
	}
}

func TestLookupMailto(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("mailto"); got != "dev@example.org" {
			t.Errorf("mailto = %q, want dev@example.org", got)
		}
		fmt.Fprint(w, `{"display_name":"Nature"}`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithMailto("dev@example.org"))
	if _, err := c.Lookup(context.Background(), "0028-0836"); err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.Lookup(context.Background(), "0000-0000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup err = %v, want ErrNotFound", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		venue Venue
		want  string
	}{
		{name: "with publisher", venue: Venue{Name: "Nature", Publisher: "Springer Nature"}, want: "Nature (Springer Nature)"},
		{name: "without publisher", venue: Venue{Name: "Nature"}, want: "Nature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.venue.Describe(); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}
