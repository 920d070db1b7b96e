// Package fetch defines the network collaborators the favicon
// strategies depend on. Implementations own all transport concerns:
// retries, timeouts, TLS quirks, connection pooling.
package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocumentFetcher retrieves and parses an HTML document.
//
// Fetch never returns nil and never reports an error: any failure
// (network error, non-2xx status, unparseable body) yields a
// structurally empty document instead. Callers detect that case with
// IsEmpty.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) *goquery.Document
}

// Prober checks whether a URL is fetchable. It reports success or
// failure without ever raising an error.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}

// EmptyDocument returns a parsed document with no content, the value a
// DocumentFetcher yields on failure.
func EmptyDocument() *goquery.Document {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
	return doc
}

// IsEmpty reports whether a document is structurally empty: nothing
// usable inside its head or body. The HTML parser always synthesizes
// the html/head/body skeleton, so those elements alone do not count as
// content.
func IsEmpty(doc *goquery.Document) bool {
	if doc == nil {
		return true
	}
	return doc.Find("head > *, body > *").Length() == 0
}
