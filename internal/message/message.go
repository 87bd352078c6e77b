// Package message renders the contact message template and the wa.me link.
package message

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/querystring"
	"github.com/sells-group/wa-widget/internal/tracking"
)

// ErrPhoneRequired is returned when the phone number has no digits.
var ErrPhoneRequired = eris.New("message: phone number is required")

// BaseURL is the WhatsApp click-to-chat endpoint.
const BaseURL = "https://wa.me/"

// Builder renders templates against the current page.
type Builder struct {
	// Tracking enables attribution enrichment of {url}.
	Tracking bool
	Resolver *tracking.Resolver
}

// NewBuilder creates a Builder using the default tracking providers.
func NewBuilder(trackingEnabled bool, opts ...tracking.Option) *Builder {
	return &Builder{
		Tracking: trackingEnabled,
		Resolver: tracking.NewDefaultResolver(opts...),
	}
}

// Process replaces the {url}, {title}, {domain} and {path} placeholders.
// Attribution is resolved at call time, so state written after page load
// is still picked up.
func (b *Builder) Process(tmpl string, env page.Environment) string {
	doc := env.Document()
	loc := doc.Location()

	pageURL := loc.Href
	if b.Tracking && b.Resolver != nil {
		pageURL = b.Resolver.EnrichedURL(page.Static(doc))
	}

	return strings.NewReplacer(
		"{url}", pageURL,
		"{title}", doc.Title,
		"{domain}", loc.Hostname,
		"{path}", loc.Pathname,
	).Replace(tmpl)
}

// CleanPhone drops every character that is not an ASCII digit.
func CleanPhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// BuildURL renders tmpl and returns the wa.me link for phone.
func (b *Builder) BuildURL(phone, tmpl string, env page.Environment) (string, error) {
	digits := CleanPhone(phone)
	if digits == "" {
		return "", ErrPhoneRequired
	}
	return BaseURL + digits + "?text=" + querystring.Escape(b.Process(tmpl, env)), nil
}
