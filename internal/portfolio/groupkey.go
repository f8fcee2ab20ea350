package portfolio

import "strings"

// NormalizeGroupKey canonicalizes a free-text grouping field (emirate,
// developer, expense category) so that casing and whitespace variants
// land in the same bucket. Empty input maps to "uncategorized".
func NormalizeGroupKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "uncategorized"
	}
	return strings.Join(strings.Fields(s), " ")
}
