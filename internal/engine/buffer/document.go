package buffer

// Document is the read-only view of host text required by the assist layer.
//
// Implementations never panic on out of range input: ByteAt reports false,
// TextRange clamps, and the line queries clamp to the nearest valid line.
// Callers validate offsets that come from outside (see CheckOffset).
type Document interface {
	// Len returns the length of the text in bytes.
	Len() int

	// ByteAt returns the byte at offset.
	ByteAt(offset int) (byte, bool)

	// TextRange returns the text in [start, end).
	TextRange(start, end int) string

	// LineCount returns the number of lines. An empty document has one line.
	LineCount() int

	// LineOfOffset returns the line containing offset.
	LineOfOffset(offset int) int

	// LineStartOffset returns the offset of the first byte of line.
	LineStartOffset(line int) int

	// LineLen returns the length of line without its delimiter.
	LineLen(line int) int

	// LineDelimiter returns the delimiter terminating line, or "" for the
	// last line.
	LineDelimiter(line int) string
}

// CheckOffset returns ErrOffsetOutOfRange unless 0 <= offset <= doc.Len().
func CheckOffset(doc Document, offset int) error {
	if offset < 0 || offset > doc.Len() {
		return ErrOffsetOutOfRange
	}
	return nil
}

// CheckRange returns ErrRangeInvalid unless [offset, offset+length) lies
// within doc.
func CheckRange(doc Document, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > doc.Len() {
		return ErrRangeInvalid
	}
	return nil
}

// LineText returns the text of line without its delimiter.
func LineText(doc Document, line int) string {
	start := doc.LineStartOffset(line)
	return doc.TextRange(start, start+doc.LineLen(line))
}

// LineEndOffset returns the offset just before the delimiter of line.
func LineEndOffset(doc Document, line int) int {
	return doc.LineStartOffset(line) + doc.LineLen(line)
}

// DefaultLineDelimiter returns the delimiter of the first line that has one,
// or "\n".
func DefaultLineDelimiter(doc Document) string {
	for line := 0; line < doc.LineCount()-1; line++ {
		if d := doc.LineDelimiter(line); d != "" {
			return d
		}
	}
	return "\n"
}
