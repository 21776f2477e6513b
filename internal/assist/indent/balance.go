package indent

import (
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Balance counts { minus } in [start, end), skipping comments, string and
// character literals. A */ without a matching /* inside the range means
// the range started inside a comment, so the count restarts from zero.
// With ignoreLeadingClosers, closers before the first { are not counted.
//
// This is a cheap character loop rather than a token scan: it runs on
// every keystroke and normally covers a single line.
func Balance(doc buffer.Document, start, end int, ignoreLeadingClosers bool) int {
	at := func(i int) byte {
		c, _ := doc.ByteAt(i)
		return c
	}

	count := 0
	for i := start; i < end; {
		c := at(i)
		i++
		switch c {
		case '/':
			if i < end {
				switch at(i) {
				case '*':
					i = commentEnd(doc, i+1, end)
				case '/':
					i = end
				}
			}
		case '*':
			if i < end && at(i) == '/' {
				count = 0
				i++
			}
		case '{':
			count++
			ignoreLeadingClosers = false
		case '}':
			if !ignoreLeadingClosers {
				count--
			}
		case '"', '\'':
			i = literalEnd(doc, i, end, c)
		}
	}
	return count
}

func commentEnd(doc buffer.Document, i, end int) int {
	for i+1 < end {
		c, _ := doc.ByteAt(i)
		n, _ := doc.ByteAt(i + 1)
		if c == '*' && n == '/' {
			return i + 2
		}
		i++
	}
	return end
}

func literalEnd(doc buffer.Document, i, end int, quote byte) int {
	for i < end {
		c, _ := doc.ByteAt(i)
		switch c {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return end
}

// FindMatchingOpenBracket returns the line holding the { that matches the
// closers on line up to end. closingIncrease counts closers not yet in the
// document (a } being typed). Earlier lines are added whole until the count
// stops being negative. Returns scanner.NotFound when the document start
// is reached first.
func FindMatchingOpenBracket(doc buffer.Document, line, end, closingIncrease int) int {
	start := doc.LineStartOffset(line)
	count := Balance(doc, start, end, false) - closingIncrease
	for count < 0 {
		line--
		if line < 0 {
			return scanner.NotFound
		}
		start = doc.LineStartOffset(line)
		count += Balance(doc, start, start+doc.LineLen(line), false)
	}
	return line
}
