package scanner

import (
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// LooksLikeCompositeTypeDefinition reports whether the { at openBrace
// starts the body of a struct, union or enum, optionally tagged:
// "struct point {", "enum {".
func (s *Scanner) LooksLikeCompositeTypeDefinition(openBrace, limit int) bool {
	prev := s.PreviousToken(openBrace, limit)
	if prev.Kind == token.Ident {
		prev = s.PreviousToken(prev.Start, limit)
	}
	switch prev.Kind {
	case token.Struct, token.Union, token.Enum:
		return true
	}
	return false
}

// LooksLikeInitializer reports whether the { at openBrace follows an =.
func (s *Scanner) LooksLikeInitializer(openBrace, limit int) bool {
	return s.PreviousToken(openBrace, limit).Kind == token.Equal
}

// LooksLikeInterfaceReference reports whether a < at angle (present or
// about to be typed) opens the argument list of an interface reference
// such as "uses interface Timer<TMilli>": the < follows an identifier that
// itself follows an identifier or the interface keyword, and whatever comes
// after the < on the same line is an identifier.
func (s *Scanner) LooksLikeInterfaceReference(angle, limit int) bool {
	after := angle
	if c, ok := s.doc.ByteAt(angle); ok && c == '<' {
		after++
	}
	lineEnd := buffer.LineEndOffset(s.doc, s.doc.LineOfOffset(angle))
	if next := s.NextToken(after, lineEnd); next.Kind != token.Ident && next.Kind != token.EOF {
		return false
	}

	prev := s.PreviousToken(angle, limit)
	if prev.Kind != token.Ident {
		return false
	}
	prev = s.PreviousToken(prev.Start, limit)
	return prev.Kind == token.Ident || prev.Kind == token.Interface
}
