package token

import "fmt"

// Token is a classified span of text. Tokens carry no text of their own;
// callers slice the document with Start and End when they need it.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d)", t.Kind, t.Start, t.End)
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsEOF reports whether the token marks the end of a scan window.
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}
