// Package utils provides small, generic helpers shared across layers.
// Nothing here knows about the domain.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or not a
// valid integer. No trimming is performed; callers pass raw query values.
//
// Used by list handlers to read limit/offset query parameters without
// per-handler error plumbing:
//
//	limit := utils.AtoiDefault(c.Query("limit"), 20)
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
