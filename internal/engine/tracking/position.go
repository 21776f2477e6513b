package tracking

import (
	"fmt"

	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Position is a tracked span of text.
type Position struct {
	Offset  int
	Length  int
	deleted bool
}

// NewPosition creates a live position.
func NewPosition(offset, length int) *Position {
	return &Position{Offset: offset, Length: length}
}

// String returns a human-readable representation of the position.
func (p *Position) String() string {
	if p.deleted {
		return fmt.Sprintf("[%d+%d deleted]", p.Offset, p.Length)
	}
	return fmt.Sprintf("[%d+%d]", p.Offset, p.Length)
}

// End returns the exclusive end offset.
func (p *Position) End() int {
	return p.Offset + p.Length
}

// IsDeleted reports whether an edit consumed the position. A consumed
// position sits empty at the end of the text that replaced it.
func (p *Position) IsDeleted() bool {
	return p.deleted
}

// Delete marks the position as deleted. Deleted positions are not adjusted.
func (p *Position) Delete() {
	p.deleted = true
}

// Includes reports whether offset lies inside [Offset, End).
func (p *Position) Includes(offset int) bool {
	return !p.deleted && offset >= p.Offset && offset < p.End()
}

// Adjust updates the position for an applied change.
func (p *Position) Adjust(c buffer.Change) {
	if p.deleted {
		return
	}

	end := p.Offset + p.Length
	changeEnd := c.Offset + c.OldLength

	switch {
	case p.Offset >= changeEnd:
		// change precedes the position
		p.Offset += c.Delta()
	case end <= c.Offset:
		// change follows the position
	case p.Offset <= c.Offset && end >= changeEnd:
		// change is internal to the position
		p.Length += c.Delta()
	case p.Offset <= c.Offset:
		// change extends over the end of the position
		p.Length = c.Offset - p.Offset
	case end > changeEnd:
		// change extends from before the position into it
		p.Offset = c.Offset + c.NewLength
		p.Length = end - changeEnd
	default:
		// change consumes the position; it collapses onto the replacement end
		p.Offset = c.Offset + c.NewLength
		p.Length = 0
		p.deleted = true
	}
}
