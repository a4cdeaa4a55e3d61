package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitleCase lowercases s and upper-cases the first letter of every
// word: "THE QUICK brown FOX" -> "The Quick Brown Fox".
func ToTitleCase(s string) string {
	return strings.TrimSpace(cases.Title(language.Und).String(s))
}

// Mask replaces runes in [start, end) with maskChar:
// Mask("1234567890", 4, 8, '*') -> "1234****90".
func Mask(s string, start, end int, maskChar rune) string {
	r := []rune(s)
	if start < 0 {
		start = 0
	}
	if start >= len(r) || end <= start {
		return s
	}
	if end > len(r) {
		end = len(r)
	}
	for i := start; i < end; i++ {
		r[i] = maskChar
	}
	return string(r)
}

// MaskEmail hides the local part of an address for logging, keeping its
// first rune: "alice@example.com" -> "a****@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return Mask(email, 1, utf8.RuneCountInString(email), '*')
	}
	local := email[:at]
	return Mask(local, 1, utf8.RuneCountInString(local), '*') + email[at:]
}
