// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimLower removes duplicates and empty strings from a slice,
// trimming and lowercasing each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrimLower([]string{"  FOO ", "bar", "Foo"})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Terms splits free text on whitespace into lowercase, de-duplicated terms.
//
// Example:
//
//	Terms("  Mary  GROAT mary ")
//	// Returns: []string{"mary", "groat"}
func Terms(text string) []string {
	return DedupeAndTrimLower(strings.Fields(text))
}

// Fold lowercases and trims a single value.
func Fold(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
