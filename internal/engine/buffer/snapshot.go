package buffer

import "sort"

// Snapshot is an immutable Document over a string.
type Snapshot struct {
	text       string
	lineStarts []int
	revisionID RevisionID
}

// NewSnapshot creates a snapshot of s. Line endings are kept as they are.
func NewSnapshot(s string) *Snapshot {
	return &Snapshot{
		text:       s,
		lineStarts: computeLineStarts(s),
	}
}

// computeLineStarts records the offset of every line start.
// "\r\n" counts as a single delimiter.
func computeLineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// RevisionID returns the revision of the buffer the snapshot was taken from.
// Snapshots created with NewSnapshot report 0.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Len returns the length in bytes.
func (s *Snapshot) Len() int {
	return len(s.text)
}

// ByteAt returns the byte at offset.
func (s *Snapshot) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(s.text) {
		return 0, false
	}
	return s.text[offset], true
}

// TextRange returns text in [start, end), clamped to the snapshot.
func (s *Snapshot) TextRange(start, end int) string {
	start = clamp(start, 0, len(s.text))
	end = clamp(end, start, len(s.text))
	return s.text[start:end]
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lineStarts)
}

// LineOfOffset returns the line containing offset.
func (s *Snapshot) LineOfOffset(offset int) int {
	offset = clamp(offset, 0, len(s.text))
	// first line start greater than offset, minus one
	return sort.SearchInts(s.lineStarts, offset+1) - 1
}

// LineStartOffset returns the offset where line begins.
func (s *Snapshot) LineStartOffset(line int) int {
	return s.lineStarts[clamp(line, 0, len(s.lineStarts)-1)]
}

// LineLen returns the length of line without its delimiter.
func (s *Snapshot) LineLen(line int) int {
	line = clamp(line, 0, len(s.lineStarts)-1)
	start := s.lineStarts[line]
	return s.lineEnd(line) - start
}

// LineDelimiter returns the delimiter that ends line.
func (s *Snapshot) LineDelimiter(line int) string {
	line = clamp(line, 0, len(s.lineStarts)-1)
	if line == len(s.lineStarts)-1 {
		return ""
	}
	return s.text[s.lineEnd(line):s.lineStarts[line+1]]
}

// LineText returns the text of line without its delimiter.
func (s *Snapshot) LineText(line int) string {
	line = clamp(line, 0, len(s.lineStarts)-1)
	return s.text[s.lineStarts[line]:s.lineEnd(line)]
}

func (s *Snapshot) lineEnd(line int) int {
	if line == len(s.lineStarts)-1 {
		return len(s.text)
	}
	end := s.lineStarts[line+1]
	if end > 0 && s.text[end-1] == '\n' {
		end--
	}
	if end > s.lineStarts[line] && s.text[end-1] == '\r' {
		end--
	}
	return end
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset int) Point {
	offset = clamp(offset, 0, len(s.text))
	line := s.LineOfOffset(offset)
	return Point{Line: line, Column: offset - s.lineStarts[line]}
}

// PointToOffset converts line/column to a byte offset, clamping the column
// to the line length.
func (s *Snapshot) PointToOffset(p Point) int {
	line := clamp(p.Line, 0, len(s.lineStarts)-1)
	return s.lineStarts[line] + clamp(p.Column, 0, s.LineLen(line))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
