package utils

import "strings"

func ToPointer[T any](value T) *T {
	return &value
}

// ParseBool reports whether s spells "true" in any letter case. Anything else,
// including "1" and "yes", is false.
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true")
}
