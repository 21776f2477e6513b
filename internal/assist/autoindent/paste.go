package autoindent

import (
	"fmt"
	"strings"

	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// ReactToPaste reindents text replacing length bytes at offset so that its
// first non-blank line gets the indentation its new context asks for. All
// pasted lines are shifted by the same amount, keeping their relative
// indentation. It reports false when text has no line break, when the
// context cannot be classified, or when no shift is needed.
func (e *Engine) ReactToPaste(doc buffer.Document, offset, length int, text string) (edit.Transform, bool, error) {
	if err := buffer.CheckRange(doc, offset, length); err != nil {
		return edit.Transform{}, false, fmt.Errorf("react to paste at %d+%d: %w", offset, length, err)
	}
	if !hasLineBreak(text) || indent.IsBlank(text) {
		return edit.Transform{}, false, nil
	}

	in := e.indenter(doc)
	if !in.Scanner().InCode(offset, scanner.Unbound) {
		e.logger.Debug("paste not reindented", logging.FieldOffset, offset, logging.FieldReason, "inside comment or literal")
		return edit.Transform{}, false, nil
	}

	// Whitespace before the paste on its line is swallowed so the first
	// pasted line can be indented too.
	newOffset, newLength := offset, length
	skipFirst := true
	line := doc.LineOfOffset(offset)
	lineStart := doc.LineStartOffset(line)
	if indent.IsBlank(doc.TextRange(lineStart, offset)) {
		newLength += offset - lineStart
		newOffset = lineStart
		skipFirst = false
	}

	refOffset := min(in.ReferencePosition(offset), in.ReferencePosition(peerPosition(in, offset, length, text)))
	refLine := max(doc.LineOfOffset(refOffset), line-e.opts.PasteContextLines)
	prefix := doc.TextRange(doc.LineStartOffset(refLine), newOffset)

	scratch := buffer.NewSnapshot(prefix + text)
	sin := indent.New(scratch, e.opts.Indent)
	tw := sin.TabWidth()

	bodyLine := scratch.LineOfOffset(len(prefix))
	first := bodyLine
	if skipFirst {
		first++
	}

	replaced := make(map[int]string)
	detected := false
	delta, addition := 0, ""
	for l := first; l < scratch.LineCount(); l++ {
		lineText := buffer.LineText(scratch, l)
		if indent.IsBlank(lineText) {
			continue
		}
		if !detected {
			correct, ok := sin.ComputeIndent(l)
			if !ok {
				e.logger.Debug("paste not reindented", logging.FieldLine, l, logging.FieldReason, "context not code")
				return edit.Transform{}, false, nil
			}
			delta, addition = indent.DiffIndent(correct, indent.LeadingWhitespace(lineText), tw)
			detected = true
			if delta == 0 {
				break
			}
		}
		if delta > 0 {
			replaced[l] = indent.AddIndent(lineText, addition)
		} else {
			replaced[l] = indent.CutIndent(lineText, -delta, tw)
		}
	}

	if len(replaced) == 0 {
		if newOffset == offset {
			return edit.Transform{}, false, nil
		}
		return edit.New(newOffset, newLength, text), true, nil
	}

	var b strings.Builder
	for l := bodyLine; l < scratch.LineCount(); l++ {
		start := max(scratch.LineStartOffset(l), len(prefix))
		if r, ok := replaced[l]; ok {
			b.WriteString(r)
		} else {
			b.WriteString(scratch.TextRange(start, buffer.LineEndOffset(scratch, l)))
		}
		b.WriteString(scratch.LineDelimiter(l))
	}

	e.logger.Debug("paste reindented", logging.FieldOffset, newOffset, logging.FieldDelta, delta)
	return edit.New(newOffset, newLength, b.String()), true, nil
}
