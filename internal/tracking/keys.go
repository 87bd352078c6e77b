// Package tracking resolves marketing attribution parameters for a page and
// appends them to the page URL.
package tracking

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/sells-group/wa-widget/internal/querystring"
)

// Keys is the closed allow-list of attribution parameters.
var Keys = []string{
	// UTM parameters.
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	// Ad-platform click identifiers.
	"gclid", "fbclid", "msclkid",
}

var keySet = func() map[string]bool {
	m := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		m[k] = true
	}
	return m
}()

// IsKey reports whether k is a recognized attribution key.
func IsKey(k string) bool { return keySet[k] }

// Map is an insertion-ordered attribution mapping. Empty values are never stored.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap creates an empty Map.
func NewMap() Map {
	return Map{values: make(map[string]string)}
}

// Set stores value under key. An empty value is treated as absent.
func (m *Map) Set(key, value string) {
	if value == "" {
		return
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or "".
func (m Map) Get(key string) string { return m.values[key] }

// Keys returns keys in insertion order.
func (m Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m Map) Len() int { return len(m.keys) }

// Merge copies every entry of other into m; other wins on conflicts and
// existing keys keep their position.
func (m *Map) Merge(other Map) {
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
}

// ToMap returns a plain copy of the entries.
func (m Map) ToMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// MarshalJSON writes the entries as an object in insertion order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the entries as a mapping in insertion order.
func (m Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.values[k]},
		)
	}
	return node, nil
}

// Filter keeps only attribution keys with non-empty values. The result follows
// the order of Keys, not of p.
func Filter(p *querystring.Params) Map {
	out := NewMap()
	for _, k := range Keys {
		out.Set(k, p.Get(k))
	}
	return out
}
