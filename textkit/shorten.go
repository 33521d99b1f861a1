// Package textkit formats text for display.
package textkit

import (
	"strings"
	"unicode"
)

const dots = "..."

// Shorten cuts input to at most max runes, at the last space when there is one, and marks
// the cut with "..." when ellipsis is set. The dots count towards max.
func Shorten(input string, max int, ellipsis bool) string {
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}

	if ellipsis {
		max -= len(dots)
		if max < 0 {
			max = 0
		}
	}

	end := max
	for i := max; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			end = i
			break
		}
	}

	cut := strings.TrimRightFunc(string(runes[:end]), unicode.IsSpace)
	if ellipsis {
		return cut + dots
	}
	return cut
}
