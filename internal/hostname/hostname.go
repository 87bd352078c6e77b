// Package hostname compares hosts by an approximate registrable domain.
//
// The registrable domain is taken to be the last two dot-separated labels.
// This is not a public-suffix lookup: hosts under multi-label suffixes such as
// co.uk all collapse to the suffix itself.
package hostname

import "strings"

// Normalize strips one leading "www." and lower-cases the host.
func Normalize(host string) string {
	return strings.ToLower(strings.TrimPrefix(host, "www."))
}

// RegistrableDomain returns the last two labels of the normalized host.
func RegistrableDomain(host string) string {
	labels := strings.Split(Normalize(host), ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}

// SameSite reports whether two hosts share a registrable domain.
func SameSite(a, b string) bool {
	return RegistrableDomain(a) == RegistrableDomain(b)
}

// SecondLevelLabel returns the label just left of the top-level label, e.g.
// "google" for "www.google.com". Single-label hosts are returned whole.
func SecondLevelLabel(host string) string {
	h := Normalize(host)
	labels := strings.Split(h, ".")
	if len(labels) < 2 {
		return h
	}
	return labels[len(labels)-2]
}
