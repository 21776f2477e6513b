package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset int, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end int) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// NewReplace creates an Edit that replaces length bytes at offset.
func NewReplace(offset, length int, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset + length}, NewText: text}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Range.Len()
}

// Change describes an edit after it was applied, in the form position
// trackers consume: Offset and OldLength in old coordinates, NewLength in
// new ones.
type Change struct {
	Offset    int
	OldLength int
	NewLength int
	OldText   string
	NewText   string
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("Change(%d, -%d, +%d)", c.Offset, c.OldLength, c.NewLength)
}

// Delta returns the change in buffer length.
func (c Change) Delta() int {
	return c.NewLength - c.OldLength
}

// OldEnd returns the end of the replaced region in old coordinates.
func (c Change) OldEnd() int {
	return c.Offset + c.OldLength
}

// NewEnd returns the end of the inserted text in new coordinates.
func (c Change) NewEnd() int {
	return c.Offset + c.NewLength
}
