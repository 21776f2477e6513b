package scanner

import (
	"strings"

	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

const (
	// NotFound is returned by searches that reach their bound.
	NotFound = -1

	// Unbound lets a search run to the document start or end.
	Unbound = -2
)

// Scanner is a heuristic token scanner over a document.
type Scanner struct {
	doc buffer.Document
	pos int
}

// New creates a scanner over doc.
func New(doc buffer.Document) *Scanner {
	return &Scanner{doc: doc}
}

// Document returns the scanned document.
func (s *Scanner) Document() buffer.Document {
	return s.doc
}

// Position returns where the last NextToken or PreviousToken call stopped:
// the end of the token for forward scans, its start for backward scans.
func (s *Scanner) Position() int {
	return s.pos
}

func (s *Scanner) upper(limit int) int {
	if limit == Unbound || limit > s.doc.Len() {
		return s.doc.Len()
	}
	return limit
}

func (s *Scanner) lower(limit int) int {
	if limit == Unbound || limit < 0 {
		return 0
	}
	return limit
}

// NextToken returns the first token in [from, limit).
func (s *Scanner) NextToken(from, limit int) token.Token {
	tok := token.Next(s.doc, from, s.upper(limit))
	s.pos = tok.End
	return tok
}

// PreviousToken returns the last token in [limit, from).
func (s *Scanner) PreviousToken(from, limit int) token.Token {
	tok := token.Previous(s.doc, from, s.lower(limit))
	s.pos = tok.Start
	return tok
}

// TokenText returns the source text of tok.
func (s *Scanner) TokenText(tok token.Token) string {
	return s.doc.TextRange(tok.Start, tok.End)
}

// FindOpeningPeer searches [limit, from) backwards for the open token that
// is not closed before from. Each close token met on the way must be
// balanced by an open token first. Other bracket kinds are ignored.
func (s *Scanner) FindOpeningPeer(from, limit int, open, close token.Kind) int {
	var brackets []token.Token
	token.Walk(s.doc, s.lower(limit), from, func(t token.Token) bool {
		if t.Kind == open || t.Kind == close {
			brackets = append(brackets, t)
		}
		return true
	})

	depth := 1
	for i := len(brackets) - 1; i >= 0; i-- {
		if brackets[i].Kind == close {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return brackets[i].Start
		}
	}
	return NotFound
}

// FindClosingPeer searches [from, limit) for the close token that balances
// an open token just before from.
func (s *Scanner) FindClosingPeer(from, limit int, open, close token.Kind) int {
	result := NotFound
	depth := 1
	token.Walk(s.doc, from, s.upper(limit), func(t token.Token) bool {
		switch t.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				result = t.Start
				return false
			}
		}
		return true
	})
	return result
}

// FindEnclosingOpener returns the innermost {, ( or [ in [limit, from) that
// is still open at from, or an EOF token. A closer that does not match the
// innermost opener closes the nearest opener of its own kind.
func (s *Scanner) FindEnclosingOpener(from, limit int) token.Token {
	var stack []token.Token
	token.Walk(s.doc, s.lower(limit), from, func(t token.Token) bool {
		switch {
		case t.Kind.IsOpening():
			stack = append(stack, t)
		case t.Kind.IsClosing():
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].Kind == t.Kind.Peer() {
					stack = stack[:i]
					break
				}
			}
		}
		return true
	})
	if len(stack) == 0 {
		return token.Token{Kind: token.EOF, Start: NotFound, End: NotFound}
	}
	return stack[len(stack)-1]
}

// ScanForward returns the offset of the first ch in [from, limit) that is
// part of code, or NotFound. Whitespace cannot be searched for.
func (s *Scanner) ScanForward(from, limit int, ch byte) int {
	result := NotFound
	token.Walk(s.doc, from, s.upper(limit), func(t token.Token) bool {
		if i := strings.IndexByte(s.TokenText(t), ch); i >= 0 {
			result = t.Start + i
			return false
		}
		return true
	})
	return result
}

// ScanBackward returns the offset of the last ch in [limit, from) that is
// part of code, or NotFound.
func (s *Scanner) ScanBackward(from, limit int, ch byte) int {
	result := NotFound
	token.Walk(s.doc, s.lower(limit), from, func(t token.Token) bool {
		if i := strings.LastIndexByte(s.TokenText(t), ch); i >= 0 {
			result = t.Start + i
		}
		return true
	})
	return result
}

// InCode reports whether offset lies in code, lexing from limit.
func (s *Scanner) InCode(offset, limit int) bool {
	return token.InCode(s.doc, s.lower(limit), offset)
}

// FindPeer returns the offset of the bracket matching the {, [, (, }, ]
// or ) at offset, or NotFound when offset holds no bracket in code or the
// bracket is unmatched.
func (s *Scanner) FindPeer(offset int) int {
	c, ok := s.doc.ByteAt(offset)
	if !ok || !s.InCode(offset, Unbound) {
		return NotFound
	}
	k := token.Punct(c)
	switch {
	case k.IsOpening():
		return s.FindClosingPeer(offset+1, Unbound, k, k.Peer())
	case k.IsClosing():
		return s.FindOpeningPeer(offset, Unbound, k.Peer(), k)
	}
	return NotFound
}
