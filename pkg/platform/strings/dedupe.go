// Package strings holds small string-slice helpers.
package strings

import (
	"slices"
	"strings"
)

// DedupeAndTrim trims each value and drops empty entries and repeats. The
// first occurrence wins, so order is preserved.
func DedupeAndTrim(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
