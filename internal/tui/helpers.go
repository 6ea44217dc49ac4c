package tui

import (
	"strings"
	"unicode/utf8"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// mask hides a secret unless revealed
func mask(secret string, revealed bool) string {
	if revealed || secret == "" {
		return secret
	}
	return maskedPassword
}

const maskedPassword = "******"

// divider draws a horizontal rule of width w
func divider(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat("─", w)
}

// clamp keeps a cursor inside [0, n)
func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
