package linktag

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/caasmo/iconfind/favicon"
	"github.com/caasmo/iconfind/fetch"
)

// fakeFetcher serves canned HTML by URL and records every fetch.
// Unknown URLs yield an empty document, like a failed network fetch.
type fakeFetcher struct {
	docs  map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) *goquery.Document {
	f.calls = append(f.calls, url)
	raw, ok := f.docs[url]
	if !ok {
		return fetch.EmptyDocument()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return fetch.EmptyDocument()
	}
	return doc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocate_HrefResolution(t *testing.T) {
	page := favicon.Page{Scheme: "https", Server: "example.com", Path: "/deep/page"}

	testCases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "root relative",
			html: `<html><head><link rel="icon" href="/f.png"></head><body></body></html>`,
			want: "https://example.com/f.png",
		},
		{
			name: "absolute shortcut icon unchanged",
			html: `<html><head><link rel="shortcut icon" href="https://cdn.example.com/icon.svg"></head><body></body></html>`,
			want: "https://cdn.example.com/icon.svg",
		},
		{
			name: "protocol relative inherits scheme",
			html: `<html><head><link rel="icon" href="//static.example.com/i.ico"></head><body></body></html>`,
			want: "https://static.example.com/i.ico",
		},
		{
			name: "directory relative joins page directory",
			html: `<html><head><link rel="icon" href="icon.png"></head><body></body></html>`,
			want: "https://example.com/deep/icon.png",
		},
		{
			// The directory-relative branch performs a raw join; dot
			// segments are kept verbatim, not normalized.
			name: "dot segments kept verbatim",
			html: `<html><head><link rel="icon" href="../icon.png"></head><body></body></html>`,
			want: "https://example.com/deep/../icon.png",
		},
		{
			name: "base href prepended to root relative",
			html: `<html><head><base href="https://cdn.example.com/assets"><link rel="icon" href="/f.png"></head><body></body></html>`,
			want: "https://cdn.example.com/assets/f.png",
		},
		{
			name: "first icon link in document order wins",
			html: `<html><head><link rel="shortcut icon" href="/first.ico"><link rel="icon" href="/second.png"></head><body></body></html>`,
			want: "https://example.com/first.ico",
		},
		{
			name: "no icon link",
			html: `<html><head><link rel="stylesheet" href="/style.css"></head><body><p>hi</p></body></html>`,
			want: "",
		},
		{
			name: "icon link without href",
			html: `<html><head><link rel="icon"></head><body><p>hi</p></body></html>`,
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeFetcher{docs: map[string]string{page.URL(): tc.html}}
			s := New(fetcher, testLogger())

			got, err := s.Locate(context.Background(), page)
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Locate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocate_RetriesServerRootOnEmptyDocument(t *testing.T) {
	page := favicon.Page{Scheme: "https", Server: "example.com", Path: "/deep/page"}

	// Only the root document declares the icon link.
	fetcher := &fakeFetcher{docs: map[string]string{
		"https://example.com": `<html><head><link rel="icon" href="/root.ico"></head><body></body></html>`,
	}}
	s := New(fetcher, testLogger())

	got, err := s.Locate(context.Background(), page)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got != "https://example.com/root.ico" {
		t.Errorf("Locate() = %q, want the root document's icon", got)
	}

	wantCalls := []string{"https://example.com/deep/page", "https://example.com"}
	if len(fetcher.calls) != len(wantCalls) {
		t.Fatalf("fetcher calls = %v, want %v", fetcher.calls, wantCalls)
	}
	for i := range wantCalls {
		if fetcher.calls[i] != wantCalls[i] {
			t.Errorf("fetch[%d] = %q, want %q", i, fetcher.calls[i], wantCalls[i])
		}
	}
}

func TestLocate_NoRootRetryWithoutPath(t *testing.T) {
	page := favicon.Page{Scheme: "https", Server: "example.com", Path: ""}

	fetcher := &fakeFetcher{docs: map[string]string{}}
	s := New(fetcher, testLogger())

	got, err := s.Locate(context.Background(), page)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got != "" {
		t.Errorf("Locate() = %q, want not found", got)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetcher was called %d times, want 1 (root retry would refetch the same URL)", len(fetcher.calls))
	}
}

func TestPageDir(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"/deep/page.html", "/deep/"},
		{"/page.html", "/"},
		{"/a/b/", "/a/b/"},
		{"", "/"},
		{"noslash", "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			if got := pageDir(tc.path); got != tc.want {
				t.Errorf("pageDir(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
