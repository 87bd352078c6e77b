// Package page models the read-only browser state a contact link is built from.
package page

import (
	"net/url"
	"strings"
)

// Document is a snapshot of the host page: its full URL, document.referrer,
// document.cookie and document.title.
type Document struct {
	URL      string `json:"url" yaml:"url"`
	Referrer string `json:"referrer,omitempty" yaml:"referrer,omitempty"`
	Cookie   string `json:"cookie,omitempty" yaml:"cookie,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Location returns the URL split the way window.location exposes it.
func (d Document) Location() Location {
	return ParseLocation(d.URL)
}

// Environment supplies the current document. Implementations may return a
// different document on every call; callers must not cache it.
type Environment interface {
	Document() Document
}

// Static is an Environment that always returns the same document.
type Static Document

// Document implements Environment.
func (s Static) Document() Document { return Document(s) }

// EnvironmentFunc adapts a function to Environment.
type EnvironmentFunc func() Document

// Document implements Environment.
func (f EnvironmentFunc) Document() Document { return f() }

// Location mirrors the window.location fields used when building links.
type Location struct {
	Href     string
	Search   string // "?..." or "" when the query is empty
	Hash     string // "#..." or "" when the fragment is empty
	Hostname string
	Pathname string
}

// ParseLocation splits href into its location parts. Hosts that cannot be
// parsed leave Hostname empty; the other fields come from the raw string.
func ParseLocation(href string) Location {
	loc := Location{Href: href, Pathname: "/"}

	rest := href
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		if len(rest)-i > 1 {
			loc.Hash = rest[i:]
		}
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		if len(rest)-i > 1 {
			loc.Search = rest[i:]
		}
		rest = rest[:i]
	}

	u, err := url.Parse(rest)
	if err != nil {
		return loc
	}
	loc.Hostname = strings.ToLower(u.Hostname())
	if p := u.EscapedPath(); p != "" {
		loc.Pathname = p
	}
	return loc
}
