package autoclose

import (
	"strings"

	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// admit reports whether typing c over [offset, offset+length) should
// insert a pair.
func (m *Machine) admit(doc buffer.Document, c byte, offset, length int) (bool, string) {
	if !m.opts.SmartInsert {
		return false, "smart insert off"
	}

	startLine := doc.LineOfOffset(offset)
	endLine := doc.LineOfOffset(offset + length)
	sc := scanner.New(doc)

	next := sc.NextToken(offset+length, buffer.LineEndOffset(doc, endLine))
	nextText := ""
	if !next.IsEOF() {
		nextText = strings.TrimSpace(doc.TextRange(offset, sc.Position()))
	}
	prev := sc.PreviousToken(offset, doc.LineStartOffset(startLine))
	prevText := ""
	if !prev.IsEOF() {
		prevText = strings.TrimSpace(doc.TextRange(prev.Start, offset))
	}

	switch c {
	case '(':
		switch {
		case !m.opts.CloseBrackets:
			return false, "brackets off"
		case next.Kind == token.LParen || next.Kind == token.Ident:
			return false, "before " + next.Kind.String()
		case len(nextText) > 1:
			return false, "before text"
		}
	case '[':
		switch {
		case !m.opts.CloseBrackets:
			return false, "brackets off"
		case next.Kind == token.Ident:
			return false, "before identifier"
		case len(nextText) > 1:
			return false, "before text"
		}
	case '<':
		switch {
		case !m.opts.CloseAngularBrackets:
			return false, "angular brackets off"
		case next.Kind == token.LAngle:
			return false, "before <"
		case !angularIntroducer(sc, prev, offset, doc.LineStartOffset(startLine)):
			return false, "not a type argument list"
		}
	case '\'', '"':
		switch {
		case !m.opts.CloseStrings:
			return false, "strings off"
		case next.Kind == token.Ident || prev.Kind == token.Ident:
			return false, "next to identifier"
		case len(nextText) > 1 || len(prevText) > 1:
			return false, "next to text"
		}
	default:
		return false, "not an opener"
	}

	if !sc.InCode(offset, scanner.Unbound) {
		return false, "not in code"
	}
	return true, ""
}

// angularIntroducer reports whether a < typed at offset after prev starts
// an argument list rather than a comparison.
func angularIntroducer(sc *scanner.Scanner, prev token.Token, offset, lineStart int) bool {
	switch prev.Kind {
	case token.LBrace, token.RBrace, token.Semicolon, token.EOF:
		return true
	}
	return sc.LooksLikeInterfaceReference(offset, lineStart)
}
