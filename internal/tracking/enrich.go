package tracking

import (
	"regexp"
	"strings"

	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/querystring"
)

var presence = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Keys))
	for _, k := range Keys {
		m[k] = presencePattern(k)
	}
	return m
}()

// presencePattern matches key as a whole parameter name, so "utm_source="
// does not match inside "custom_utm_source=".
func presencePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`[?&]` + regexp.QuoteMeta(key) + `=`)
}

func hasParam(search, key string) bool {
	re, ok := presence[key]
	if !ok {
		re = presencePattern(key)
	}
	return re.MatchString(search)
}

// Enrich appends the entries of m that loc.Search does not already carry.
// Parameters present in the URL always win. The fragment is kept at the end.
// When nothing needs adding, loc.Href is returned unchanged.
func Enrich(loc page.Location, m Map) string {
	var add []string
	for _, k := range m.Keys() {
		v := m.Get(k)
		if v == "" || hasParam(loc.Search, k) {
			continue
		}
		add = append(add, querystring.EncodeParam(k, v))
	}
	if len(add) == 0 {
		return loc.Href
	}

	base := loc.Href
	if loc.Hash != "" {
		base = strings.Replace(base, loc.Hash, "", 1)
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(add, "&") + loc.Hash
}
