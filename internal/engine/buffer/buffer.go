package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is the editable host buffer. Every edit replaces the current
// snapshot, so readers holding a Snapshot never observe a partial edit.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	snap       *Snapshot
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.setText("")
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.setText(b.normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// CRLF sequences may be split across reads; normalize the whole text.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

func (b *Buffer) setText(s string) {
	snap := NewSnapshot(s)
	snap.revisionID = NewRevisionID()
	b.snap = snap
}

// normalizeLineEndings converts all line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

func (b *Buffer) current() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Read Operations

// Snapshot returns an immutable view of the current content.
func (b *Buffer) Snapshot() *Snapshot {
	return b.current()
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.current().Text()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end int) string {
	return b.current().TextRange(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	return b.current().Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset int) (byte, bool) {
	return b.current().ByteAt(offset)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.current().LineCount()
}

// LineOfOffset returns the line containing offset.
func (b *Buffer) LineOfOffset(offset int) int {
	return b.current().LineOfOffset(offset)
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line int) int {
	return b.current().LineStartOffset(line)
}

// LineLen returns the length of a line without its delimiter.
func (b *Buffer) LineLen(line int) int {
	return b.current().LineLen(line)
}

// LineDelimiter returns the delimiter terminating line.
func (b *Buffer) LineDelimiter(line int) string {
	return b.current().LineDelimiter(line)
}

// LineText returns the text of a line without its delimiter.
func (b *Buffer) LineText(line int) string {
	return b.current().LineText(line)
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset int) Point {
	return b.current().OffsetToPoint(offset)
}

// PointToOffset converts line/column to a byte offset.
func (b *Buffer) PointToOffset(p Point) int {
	return b.current().PointToOffset(p)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	c, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		return 0, err
	}
	return c.NewEnd(), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end int) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	c, err := b.ApplyEdit(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	return c.NewEnd(), nil
}

// ApplyEdit applies a single edit and describes what changed.
func (b *Buffer) ApplyEdit(edit Edit) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.snap.text
	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End || edit.Range.End > len(old) {
		return Change{}, ErrRangeInvalid
	}

	text := b.normalizeLineEndings(edit.NewText)
	oldText := old[edit.Range.Start:edit.Range.End]
	b.setText(old[:edit.Range.Start] + text + old[edit.Range.End:])

	return Change{
		Offset:    edit.Range.Start,
		OldLength: len(oldText),
		NewLength: len(text),
		OldText:   oldText,
		NewText:   text,
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.current().RevisionID()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}
