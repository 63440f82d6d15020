// Package common provides shared utilities for the UI.
package common

// TruncateName truncates a user name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// Tail returns the last n items of s.
func Tail[T any](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
