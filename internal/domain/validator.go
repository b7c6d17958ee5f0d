// Package domain checks candidate zone names before any file lookup.
package domain

import "regexp"

// Labels of letters, digits and hyphens joined by dots, ending in a
// 2-24 letter top-level label. Hyphen placement and label length are
// not checked.
var domainPattern = regexp.MustCompile(`(?i)^[a-z0-9-]+(\.[a-z0-9-]+)*\.[a-z]{2,24}$`)

// IsValid reports whether name is acceptable as a zone name
func IsValid(name string) bool {
	return domainPattern.MatchString(name)
}
