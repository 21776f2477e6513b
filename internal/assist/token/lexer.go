package token

import "github.com/dshills/nescassist/internal/engine/buffer"

// Region identifies the lexical region an offset belongs to.
type Region uint8

const (
	RegionCode Region = iota
	RegionLineComment
	RegionBlockComment
	RegionString
	RegionChar
	RegionPreprocessor
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionCode:
		return "code"
	case RegionLineComment:
		return "line-comment"
	case RegionBlockComment:
		return "block-comment"
	case RegionString:
		return "string"
	case RegionChar:
		return "char"
	case RegionPreprocessor:
		return "preprocessor"
	default:
		return "unknown"
	}
}

// lexer walks a window of a document. The window start is assumed to be at
// the beginning of a line for preprocessor detection.
type lexer struct {
	doc buffer.Document
	pos int
	end int

	// region is the region the window ended in.
	region Region
}

func newLexer(doc buffer.Document, start, end int) *lexer {
	if start < 0 {
		start = 0
	}
	if end > doc.Len() {
		end = doc.Len()
	}
	return &lexer{doc: doc, pos: start, end: end}
}

func (l *lexer) at(i int) byte {
	if i >= l.end {
		return 0
	}
	c, _ := l.doc.ByteAt(i)
	return c
}

// run emits tokens until fn returns false or the window is exhausted.
func (l *lexer) run(fn func(Token) bool) {
	lineStart := true
	for l.pos < l.end {
		c := l.at(l.pos)
		switch {
		case IsNewline(c):
			lineStart = true
			l.pos++
			continue
		case IsSpace(c):
			l.pos++
			continue
		case c == '#' && lineStart:
			l.skipDirective(l.pos + 1)
		case c == '/' && l.at(l.pos+1) == '/':
			l.skipLineComment(l.pos + 2)
		case c == '/' && l.at(l.pos+1) == '*':
			l.skipBlockComment(l.pos + 2)
		case c == '"':
			l.skipQuoted(l.pos+1, '"', RegionString)
		case c == '\'':
			l.skipQuoted(l.pos+1, '\'', RegionChar)
		case IsIdentPart(c):
			start := l.pos
			for l.pos++; l.pos < l.end && IsIdentPart(l.at(l.pos)); l.pos++ {
			}
			kind := Lookup(l.doc.TextRange(start, l.pos))
			if !fn(Token{Kind: kind, Start: start, End: l.pos}) {
				return
			}
		default:
			l.pos++
			if !fn(Token{Kind: Punct(c), Start: l.pos - 1, End: l.pos}) {
				return
			}
		}
		lineStart = false
	}
}

// skipDirective moves past a preprocessor line, honoring backslash
// continuations. The terminating newline is left for the main loop.
func (l *lexer) skipDirective(i int) {
	for i < l.end {
		switch c := l.at(i); {
		case c == '\\':
			i++
			if l.at(i) == '\r' && l.at(i+1) == '\n' {
				i++
			}
			i++
		case IsNewline(c):
			l.pos = i
			return
		default:
			i++
		}
	}
	l.pos = l.end
	l.region = RegionPreprocessor
}

func (l *lexer) skipLineComment(i int) {
	for i < l.end {
		if IsNewline(l.at(i)) {
			l.pos = i
			return
		}
		i++
	}
	l.pos = l.end
	l.region = RegionLineComment
}

func (l *lexer) skipBlockComment(i int) {
	for i+1 < l.end {
		if l.at(i) == '*' && l.at(i+1) == '/' {
			l.pos = i + 2
			return
		}
		i++
	}
	l.pos = l.end
	l.region = RegionBlockComment
}

func (l *lexer) skipQuoted(i int, quote byte, region Region) {
	for i < l.end {
		switch l.at(i) {
		case '\\':
			i += 2
		case quote:
			l.pos = i + 1
			return
		default:
			i++
		}
	}
	l.pos = l.end
	l.region = region
}

// Walk calls fn for every token in [start, end) in order until fn returns
// false.
func Walk(doc buffer.Document, start, end int, fn func(Token) bool) {
	newLexer(doc, start, end).run(fn)
}

// Next returns the first token in [from, limit), or an EOF token at limit.
func Next(doc buffer.Document, from, limit int) Token {
	result := Token{Kind: EOF, Start: limit, End: limit}
	Walk(doc, from, limit, func(t Token) bool {
		result = t
		return false
	})
	return result
}

// Previous returns the last token in [limit, from), or an EOF token at
// limit. The window is lexed forward from limit, so limit should sit at a
// line start or a token boundary.
func Previous(doc buffer.Document, from, limit int) Token {
	result := Token{Kind: EOF, Start: limit, End: limit}
	Walk(doc, limit, from, func(t Token) bool {
		result = t
		return true
	})
	return result
}

// RegionAt reports the lexical region offset lies in, lexing forward from
// start.
func RegionAt(doc buffer.Document, start, offset int) Region {
	l := newLexer(doc, start, offset)
	l.run(func(Token) bool { return true })
	return l.region
}

// InCode reports whether offset lies in plain code when lexing from start.
func InCode(doc buffer.Document, start, offset int) bool {
	return RegionAt(doc, start, offset) == RegionCode
}
