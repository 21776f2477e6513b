package autoclose

import (
	"github.com/google/uuid"

	"github.com/dshills/nescassist/internal/engine/tracking"
)

// Category is the position category the machine tracks pairs under.
const Category = "autoclose.brackets"

// noEscape marks closers that cannot be escaped.
const noEscape byte = 0

// level is one active pair.
type level struct {
	id     uuid.UUID
	open   *tracking.Position
	close  *tracking.Position
	closer byte
	escape byte
}

// gapContains reports whether offset lies between the opener and the
// closer, both ends included.
func (l *level) gapContains(offset int) bool {
	return offset >= l.open.End() && offset <= l.close.Offset
}

// gapCovers reports whether [start, end) lies inside the gap.
func (l *level) gapCovers(start, end int) bool {
	return start >= l.open.End() && end <= l.close.Offset
}

// orphaned reports whether the opener is gone while the closer survives
// right where the opener was.
func (l *level) orphaned() bool {
	return (l.open.IsDeleted() || l.open.Length == 0) &&
		!l.close.IsDeleted() &&
		l.close.Offset == l.open.Offset
}

// Level describes an active pair.
type Level struct {
	ID     uuid.UUID
	Open   int
	Close  int
	Closer byte
}

func (l *level) snapshot() Level {
	return Level{ID: l.id, Open: l.open.Offset, Close: l.close.Offset, Closer: l.closer}
}

// closerOf returns the character closing c.
func closerOf(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	case '<':
		return '>'
	case '\'', '"':
		return c
	}
	return 0
}

// escapeOf returns the character that masks closer, or noEscape.
func escapeOf(closer byte) byte {
	if closer == '\'' || closer == '"' {
		return '\\'
	}
	return noEscape
}
