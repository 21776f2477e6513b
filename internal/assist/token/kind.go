package token

// Kind identifies the class of a token.
type Kind uint8

const (
	EOF Kind = iota
	LBrace
	RBrace
	LBracket
	RBracket
	LParen
	RParen
	LAngle
	RAngle
	Semicolon
	Colon
	Comma
	Equal
	Question
	Other
	Ident

	keywordBegin
	Case
	Default
	Struct
	Union
	Enum
	Typedef
	If
	Else
	For
	While
	Do
	Switch
	Return
	Break
	Interface
	Module
	Configuration
	Implementation
	Uses
	Provides
	Command
	Event
	Task
	Async
	Atomic
	Generic
	keywordEnd
)

var kindNames = map[Kind]string{
	EOF:            "EOF",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
	LParen:         "(",
	RParen:         ")",
	LAngle:         "<",
	RAngle:         ">",
	Semicolon:      ";",
	Colon:          ":",
	Comma:          ",",
	Equal:          "=",
	Question:       "?",
	Other:          "OTHER",
	Ident:          "IDENT",
	Case:           "case",
	Default:        "default",
	Struct:         "struct",
	Union:          "union",
	Enum:           "enum",
	Typedef:        "typedef",
	If:             "if",
	Else:           "else",
	For:            "for",
	While:          "while",
	Do:             "do",
	Switch:         "switch",
	Return:         "return",
	Break:          "break",
	Interface:      "interface",
	Module:         "module",
	Configuration:  "configuration",
	Implementation: "implementation",
	Uses:           "uses",
	Provides:       "provides",
	Command:        "command",
	Event:          "event",
	Task:           "task",
	Async:          "async",
	Atomic:         "atomic",
	Generic:        "generic",
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, keywordEnd-keywordBegin)
	for k := keywordBegin + 1; k < keywordEnd; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the source spelling of punctuation and keywords, or the
// class name for the other kinds.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is a keyword marker.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// IsOpening reports whether k is one of {, [ or (.
func (k Kind) IsOpening() bool {
	return k == LBrace || k == LBracket || k == LParen
}

// IsClosing reports whether k is one of }, ] or ).
func (k Kind) IsClosing() bool {
	return k == RBrace || k == RBracket || k == RParen
}

// Peer returns the matching bracket kind, or EOF if k is not a bracket.
func (k Kind) Peer() Kind {
	switch k {
	case LBrace:
		return RBrace
	case RBrace:
		return LBrace
	case LBracket:
		return RBracket
	case RBracket:
		return LBracket
	case LParen:
		return RParen
	case RParen:
		return LParen
	case LAngle:
		return RAngle
	case RAngle:
		return LAngle
	}
	return EOF
}

// Lookup maps an identifier to its keyword kind, or Ident.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Punct maps a single character to its kind. Characters without a kind of
// their own map to Other.
func Punct(c byte) Kind {
	switch c {
	case '{':
		return LBrace
	case '}':
		return RBrace
	case '[':
		return LBracket
	case ']':
		return RBracket
	case '(':
		return LParen
	case ')':
		return RParen
	case '<':
		return LAngle
	case '>':
		return RAngle
	case ';':
		return Semicolon
	case ':':
		return Colon
	case ',':
		return Comma
	case '=':
		return Equal
	case '?':
		return Question
	}
	return Other
}

// Classify returns the kind of a complete token text.
func Classify(text string) Kind {
	switch {
	case text == "":
		return EOF
	case IsIdentStart(text[0]) || IsDigit(text[0]):
		return Lookup(text)
	case len(text) == 1:
		return Punct(text[0])
	}
	return Other
}

// IsIdentStart reports whether c can start an identifier. Bytes of
// multi-byte UTF-8 sequences are treated as letters.
func IsIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsIdentPart reports whether c can continue an identifier or number.
func IsIdentPart(c byte) bool {
	return IsIdentStart(c) || IsDigit(c)
}

// IsSpace reports whether c is horizontal whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}

// IsNewline reports whether c is a line delimiter byte.
func IsNewline(c byte) bool {
	return c == '\n' || c == '\r'
}
