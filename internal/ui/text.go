package ui

import (
	"unicode"

	"golang.org/x/text/width"
)

// RuneWidth is the number of terminal cells r occupies.
func RuneWidth(r rune) int {
	if r == 0 || unicode.IsControl(r) || unicode.Is(unicode.Mn, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// TextWidth is the cell width of s.
func TextWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// Truncate cuts s to at most cells cells.
func Truncate(s string, cells int) string {
	n := 0
	for i, r := range s {
		w := RuneWidth(r)
		if n+w > cells {
			return s[:i]
		}
		n += w
	}
	return s
}
