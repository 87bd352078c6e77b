package tracking

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/wa-widget/internal/hostname"
	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/querystring"
)

// Provider extracts attribution parameters from one source of page state.
type Provider interface {
	// Name returns the provider identifier used in logs.
	Name() string
	// Provide reads doc and returns the attribution it found. A non-nil error
	// means the source was present but unreadable; the resolver logs it and
	// treats the provider as having found nothing.
	Provide(doc page.Document) (Map, error)
}

// Referrer sets utm_source from document.referrer when the visitor arrived
// from another site. Same-site referrers yield nothing.
type Referrer struct{}

var referrerHost = regexp.MustCompile(`^https?://([^/:]+)`)

// Name implements Provider.
func (Referrer) Name() string { return "referrer" }

// Provide implements Provider.
func (Referrer) Provide(doc page.Document) (Map, error) {
	out := NewMap()
	if doc.Referrer == "" {
		return out, nil
	}
	m := referrerHost.FindStringSubmatch(doc.Referrer)
	if m == nil {
		return out, nil
	}
	refHost := hostname.Normalize(m[1])
	if hostname.SameSite(refHost, doc.Location().Hostname) {
		return out, nil
	}
	out.Set("utm_source", hostname.SecondLevelLabel(refHost))
	return out, nil
}

// RDStation reads the RD Station marketing cookie (__trf.src). Its value is
// "encoded_" followed by base64 JSON of the form
//
//	{"current_session": {"value": "<query>"}, "first_session": {"value": "<query>"}}
//
// The current session wins over the first one.
type RDStation struct{}

// RDStationCookie is the name of the RD Station tracking cookie.
const RDStationCookie = "__trf.src"

var rdStationPayload = regexp.MustCompile(`(?:^|;\s*)__trf\.src=encoded_(.*?)(?:;|$)`)

// Name implements Provider.
func (RDStation) Name() string { return "rdstation" }

// Provide implements Provider.
func (RDStation) Provide(doc page.Document) (Map, error) {
	m := rdStationPayload.FindStringSubmatch(doc.Cookie)
	if m == nil {
		return NewMap(), nil
	}

	raw, err := decodeBase64(m[1])
	if err != nil {
		return NewMap(), eris.Wrap(err, "tracking: decode rdstation cookie")
	}
	if !gjson.ValidBytes(raw) {
		return NewMap(), eris.New("tracking: rdstation cookie is not valid json")
	}

	decoded := gjson.ParseBytes(raw)
	session := decoded.Get("current_session")
	if !truthy(session) {
		session = decoded.Get("first_session")
	}
	if !truthy(session) {
		return NewMap(), nil
	}

	value := session.Get("value")
	if !truthy(value) {
		return NewMap(), nil
	}
	if value.Type != gjson.String {
		return NewMap(), eris.Errorf("tracking: rdstation session value is %s, not a string", value.Type)
	}
	return Filter(querystring.Parse(value.Str)), nil
}

// truthy applies JavaScript truthiness to a JSON value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	default:
		return false
	}
}

// decodeBase64 decodes standard base64 the way atob does: ASCII whitespace is
// ignored and padding is optional.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// PageURL reads attribution from the page's own query string.
type PageURL struct{}

// Name implements Provider.
func (PageURL) Name() string { return "url" }

// Provide implements Provider.
func (PageURL) Provide(doc page.Document) (Map, error) {
	return Filter(querystring.Parse(doc.Location().Search)), nil
}

// DefaultProviders returns the providers ordered from lowest to highest
// priority: referrer, then RD Station cookie, then page URL.
func DefaultProviders() []Provider {
	return []Provider{Referrer{}, RDStation{}, PageURL{}}
}
