// Package favicon locates the favicon URL of a website given one or
// more page URLs. Resolution runs an ordered chain of pluggable
// strategies and falls back to a third-party icon service when none of
// them finds an answer.
package favicon

import "net/url"

// Page holds the decomposed components of an input URL. Path keeps its
// leading slash, or is empty when the URL has no path.
type Page struct {
	Scheme string
	Server string
	Path   string
}

// ParsePage splits a raw URL into its scheme, server and path
// components. It does not second-guess the parser: malformed input
// yields whatever decomposition net/url produces, including empty
// fields. An unparseable URL yields the zero Page.
func ParsePage(rawurl string) Page {
	u, err := url.Parse(rawurl)
	if err != nil {
		return Page{}
	}
	return Page{
		Scheme: u.Scheme,
		Server: u.Host,
		Path:   u.Path,
	}
}

// URL reassembles the page URL from its components.
func (p Page) URL() string {
	return p.Scheme + "://" + p.Server + p.Path
}

// Root returns the URL of the server root, path discarded.
func (p Page) Root() string {
	return p.Scheme + "://" + p.Server
}
