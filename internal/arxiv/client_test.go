package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractCitation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "textarea block",
			body: `<html><textarea>@ARTICLE{key, title={T}}</textarea></html>`,
			want: "@ARTICLE{key, title={T}}",
		},
		{
			name: "percent encoded",
			body: `<textarea>@article{key,%0A  title={T},%0A}</textarea>`,
			want: "@article{key,\n  title={T},\n}",
		},
		{
			name: "html entities",
			body: `<textarea>@article{key, title={Tom &amp; Jerry &lt;3}}</textarea>`,
			want: "@article{key, title={Tom & Jerry <3}}",
		},
		{
			name: "bare record without closing tag",
			body: "@article{key, year={2020}}\n",
			want: "@article{key, year={2020}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractCitation(tt.body, "2008.06030")
			if err != nil {
				t.Fatalf("extractCitation returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("extractCitation = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCitationNoBlock(t *testing.T) {
	_, err := extractCitation("<html><body>please try again later</body></html>", "2008.06030")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("extractCitation err = %v, want ErrInvalidResponse", err)
	}
}

func TestBibTeX(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/2008.06030" {
			t.Errorf("request path = %q", req.URL.Path)
		}
		fmt.Fprint(w, `<textarea>@ARTICLE{2020arXiv200806030M}</textarea>`)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	got, err := c.BibTeX(context.Background(), "2008.06030")
	if err != nil {
		t.Fatalf("BibTeX returned error: %v", err)
	}
	if got != "@ARTICLE{2020arXiv200806030M}" {
		t.Errorf("BibTeX = %q", got)
	}
}

func TestBibTeXNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.BibTeX(context.Background(), "9999.99999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("BibTeX err = %v, want ErrNotFound", err)
	}
}
