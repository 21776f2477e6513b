package indent

import (
	"strings"

	"github.com/dshills/nescassist/internal/assist/token"
)

// VisualLength returns the display width of text when tabs advance to the
// next multiple of tabWidth.
func VisualLength(text string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
	}
	return col
}

// DiffIndent compares a correct indent with the current one. A positive
// delta comes with the shortest prefix of correct that is at least delta
// columns wide; that prefix is what must be added. A delta <= 0 means
// |delta| columns must be removed and the prefix is empty.
func DiffIndent(correct, current string, tabWidth int) (int, string) {
	delta := VisualLength(correct, tabWidth) - VisualLength(current, tabWidth)
	if delta <= 0 {
		return delta, ""
	}
	for i := 0; i <= len(correct); i++ {
		if VisualLength(correct[:i], tabWidth) >= delta {
			return delta, correct[:i]
		}
	}
	return delta, correct
}

// AddIndent prefixes line with addition.
func AddIndent(line, addition string) string {
	return addition + line
}

// CutIndent removes columns visual columns of leading whitespace from
// line. A tab that straddles the cut is replaced by the spaces left over.
func CutIndent(line string, columns, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col, i := 0, 0
	for i < len(line) && col < columns && token.IsSpace(line[i]) {
		if line[i] == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
		i++
	}
	rest := line[i:]
	if col > columns {
		rest = strings.Repeat(" ", col-columns) + rest
	}
	return rest
}

// LeadingWhitespace returns the run of spaces and tabs at the start of s.
func LeadingWhitespace(s string) string {
	i := 0
	for i < len(s) && token.IsSpace(s[i]) {
		i++
	}
	return s[:i]
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
