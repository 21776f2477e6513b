// Package edit defines the edit transforms the assistant hands back to the
// host.
package edit

import (
	"fmt"

	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Transform replaces Length bytes at Offset with Text and then places the
// caret at Caret. Caret is an absolute offset in the document after the
// replacement.
type Transform struct {
	Offset int
	Length int
	Text   string
	Caret  int
}

// New returns a transform whose caret ends up after the inserted text.
func New(offset, length int, text string) Transform {
	return Transform{Offset: offset, Length: length, Text: text, Caret: offset + len(text)}
}

// WithCaret returns a copy of t with the caret at offset.
func (t Transform) WithCaret(offset int) Transform {
	t.Caret = offset
	return t
}

// End returns the end offset of the replaced range.
func (t Transform) End() int {
	return t.Offset + t.Length
}

// IsNoOp reports whether t replaces nothing with nothing.
func (t Transform) IsNoOp() bool {
	return t.Length == 0 && t.Text == ""
}

// Edit converts t to a buffer edit.
func (t Transform) Edit() buffer.Edit {
	return buffer.NewReplace(t.Offset, t.Length, t.Text)
}

// String returns a debug representation.
func (t Transform) String() string {
	return fmt.Sprintf("Transform{%d+%d -> %q, caret %d}", t.Offset, t.Length, t.Text, t.Caret)
}
