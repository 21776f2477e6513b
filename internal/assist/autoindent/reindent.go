package autoindent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// Reindent rebuilds doc line by line, pasting each line at the end of the
// text reindented so far. Lines the paste rules leave alone, such as those
// inside block comments, are copied unchanged. Every line is pasted into a
// window of at most PasteContextLines lines, so the work per line does not
// grow with the size of the document.
func (e *Engine) Reindent(doc buffer.Document) (string, error) {
	eol := buffer.DefaultLineDelimiter(doc)
	w := newContextWindow(e.opts.PasteContextLines, eol)

	var out strings.Builder
	out.Grow(doc.Len())
	changed := 0
	for l := 0; l < doc.LineCount(); l++ {
		text := buffer.LineText(doc, l)
		if doc.LineDelimiter(l) == "" && text == "" {
			break
		}
		text += eol

		at := out.Len()
		w.record(out.String(), l, at)
		view, shift := w.view(out.String(), l)
		t, ok, err := e.ReactToPaste(view, at+shift, 0, text)
		if err != nil {
			return "", fmt.Errorf("reindent line %d: %w", l, err)
		}
		if !ok || t.Offset != at+shift || t.Length != 0 {
			out.WriteString(text)
			continue
		}
		out.WriteString(t.Text)
		changed++
	}

	result := out.String()
	if last := doc.LineCount() - 1; last >= 0 && doc.LineDelimiter(last) == "" && buffer.LineText(doc, last) != "" {
		result = strings.TrimSuffix(result, eol)
	}
	e.logger.Debug("reindented", logging.FieldLine, doc.LineCount(), "changed", changed)
	return result, nil
}

// frame is a bracket still open at an anchor, with the indentation of the
// line holding it.
type frame struct {
	indent string
	opener string
}

// anchor is a line start of the reindented text that lies in code.
type anchor struct {
	line   int
	offset int
	open   []frame
}

// contextWindow picks the text each reindented line is pasted into: the
// lines since an anchor, preceded by one synthetic line per bracket still
// open at the anchor.
type contextWindow struct {
	lines   int
	eol     string
	anchors []anchor
}

func newContextWindow(lines int, eol string) *contextWindow {
	return &contextWindow{lines: lines, eol: eol, anchors: []anchor{{}}}
}

// record adds the start of line at offset as an anchor when it lies in
// code. text holds every line before it.
func (w *contextWindow) record(text string, line, offset int) {
	last := w.anchors[len(w.anchors)-1]
	if offset <= last.offset {
		return
	}
	span := buffer.NewSnapshot(text[last.offset:offset])
	if token.RegionAt(span, 0, span.Len()) != token.RegionCode {
		return
	}

	open := slices.Clone(last.open)
	token.Walk(span, 0, span.Len(), func(t token.Token) bool {
		switch {
		case t.Kind.IsOpening():
			ws := indent.LeadingWhitespace(buffer.LineText(span, span.LineOfOffset(t.Start)))
			open = append(open, frame{indent: ws, opener: span.TextRange(t.Start, t.End)})
		case t.Kind.IsClosing() && len(open) > 0:
			open = open[:len(open)-1]
		}
		return true
	})
	w.anchors = append(w.anchors, anchor{line: line, offset: offset, open: open})
}

// fits reports whether the window from a still reaches line within the
// context limit.
func (w *contextWindow) fits(a anchor, line int) bool {
	return line-a.line+len(a.open) <= w.lines
}

// view returns the window line is pasted into, and the amount to add to an
// offset of text to find it in the window.
func (w *contextWindow) view(text string, line int) (*buffer.Snapshot, int) {
	for len(w.anchors) > 1 && !w.fits(w.anchors[0], line) {
		w.anchors = w.anchors[1:]
	}
	a := w.anchors[0]

	var b strings.Builder
	for _, f := range a.open {
		b.WriteString(f.indent)
		b.WriteString(f.opener)
		b.WriteString(w.eol)
	}
	shift := b.Len() - a.offset
	b.WriteString(text[a.offset:])
	return buffer.NewSnapshot(b.String()), shift
}
