// Package querystring parses and encodes URL query strings the way browsers
// expose them to page scripts.
package querystring

import (
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var escapeTriplet = regexp.MustCompile(`%([0-9A-Fa-f]{2})`)

// Decode percent-decodes s as UTF-8. When s holds a malformed escape or the
// decoded bytes are not valid UTF-8, each %XX triplet is instead decoded as a
// single ISO-8859-1 byte and everything else is left untouched.
func Decode(s string) string {
	if s == "" {
		return ""
	}
	if out, err := url.PathUnescape(s); err == nil && utf8.ValidString(out) {
		return out
	}
	return escapeTriplet.ReplaceAllStringFunc(s, func(m string) string {
		b, err := hex.DecodeString(m[1:])
		if err != nil {
			return m
		}
		return string(charmap.ISO8859_1.DecodeByte(b[0]))
	})
}

// Escape percent-encodes s like encodeURIComponent: unreserved characters and
// !~*'() pass through, space becomes %20.
func Escape(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeParam renders a single key=value pair.
func EncodeParam(key, value string) string {
	return Escape(key) + "=" + Escape(value)
}
