// Package linktag discovers favicons declared through <link> elements
// in a page's header.
package linktag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/caasmo/iconfind/favicon"
	"github.com/caasmo/iconfind/fetch"
)

const iconSelector = `head link[rel="icon"], head link[rel="shortcut icon"]`

// Strategy implements favicon.Strategy by fetching the page and
// reading the first icon link tag from its header.
type Strategy struct {
	fetcher fetch.DocumentFetcher
	logger  *slog.Logger
}

// New creates the strategy. The fetcher owns all transport concerns.
func New(fetcher fetch.DocumentFetcher, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{fetcher: fetcher, logger: logger}
}

// Locate fetches the page document and searches its header for a link
// element with rel "icon" or "shortcut icon", first match in document
// order. When the page document comes back empty it retries once
// against the server root, since some sites only declare icon links on
// their root document. The discovered href is resolved to an absolute
// URL; see resolve for the precedence rules.
func (s *Strategy) Locate(ctx context.Context, page favicon.Page) (string, error) {
	doc := s.fetcher.Fetch(ctx, page.URL())
	if fetch.IsEmpty(doc) && page.Path != "" && page.Path != "/" {
		doc = s.fetcher.Fetch(ctx, page.Root())
	}

	link := doc.Find(iconSelector).First()
	if link.Length() == 0 {
		return "", nil
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return "", nil
	}

	// A declared <base> href is prepended verbatim, no join logic.
	if base, ok := doc.Find("head base").First().Attr("href"); ok {
		href = base + href
	}

	return s.resolve(href, page), nil
}

// resolve turns an href into an absolute URL:
//
//	http...  already absolute, returned as-is
//	//...    protocol-relative, inherits the page scheme
//	/...     root-relative, inherits scheme and server
//	other    relative to the page's directory
//
// The last branch is the least reliable: it joins the raw directory
// portion of the page path with the href, without normalizing dot
// segments, and logs a warning when taken.
func (s *Strategy) resolve(href string, page favicon.Page) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "//"):
		return page.Scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		return page.Scheme + "://" + page.Server + href
	default:
		resolved := page.Root() + pageDir(page.Path) + href
		s.logger.Warn("linktag: resolved href relative to page directory, result may be unreliable",
			"href", href, "page", page.URL(), "resolved", resolved)
		return resolved
	}
}

// pageDir returns the directory portion of a path, up to and including
// the last slash. An empty or slashless path maps to the root.
func pageDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "/"
	}
	return path[:idx+1]
}
