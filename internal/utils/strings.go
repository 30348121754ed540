package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space and
// trims the ends. Used on free-text inputs before matching.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
