package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// widths measures terminal columns. Ambiguous runes count as one column
// regardless of the locale so tables line up the same everywhere.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Truncate shortens s to at most limit terminal columns, ending with an
// ellipsis when cut. Wide runes such as CJK count as two columns.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	if limit <= len(ellipsis) {
		return widths.Truncate(s, limit, "")
	}
	return widths.Truncate(s, limit, ellipsis)
}
