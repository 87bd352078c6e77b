package querystring

import "strings"

// Params is an ordered string mapping decoded from a query string. Keys keep
// the position of their first occurrence; later duplicates replace the value.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams creates an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key, or "" when absent.
func (p *Params) Get(key string) string {
	if p == nil {
		return ""
	}
	return p.values[key]
}

// Has reports whether key is present, even with an empty value.
func (p *Params) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[key]
	return ok
}

// Keys returns the keys in source order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of keys.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Parse decodes a raw query string. A leading "?" is optional. Only segments
// with exactly one "=" and a non-empty key are kept; "+" is read as a space.
func Parse(raw string) *Params {
	p := NewParams()
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return p
	}
	for _, pair := range strings.Split(raw, "&") {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		key := Decode(strings.ReplaceAll(kv[0], "+", " "))
		value := Decode(strings.ReplaceAll(kv[1], "+", " "))
		p.Set(key, value)
	}
	return p
}
