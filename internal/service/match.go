package service

import "strings"

// containsKeyword does case-insensitive substring matching. Lowercasing is a
// no-op for the Japanese lexicons but keeps mixed-script input predictable.
func containsKeyword(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		if containsKeyword(text, k) {
			return true
		}
	}
	return false
}
