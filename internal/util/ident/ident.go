// Package ident holds the identifier comparison used by every stage that
// matches table or column names coming from a query against the catalog.
package ident

import "strings"

// Equal reports whether two SQL identifiers name the same object.
// Identifiers are case-insensitive.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Contains reports whether name appears in names, ignoring case.
func Contains(names []string, name string) bool {
	for _, n := range names {
		if Equal(n, name) {
			return true
		}
	}
	return false
}
