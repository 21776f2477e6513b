package autoindent

import (
	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// closingBrace lines up a } typed as the first character of a line with
// the line holding its {.
func (e *Engine) closingBrace(doc buffer.Document, offset, length int) (edit.Transform, bool) {
	line := doc.LineOfOffset(offset)
	lineStart := doc.LineStartOffset(line)
	if firstNonSpace(doc, lineStart, offset) != offset {
		return edit.Transform{}, false
	}

	in := e.indenter(doc)
	if !in.Scanner().InCode(offset, scanner.Unbound) {
		return edit.Transform{}, false
	}

	ref := indent.FindMatchingOpenBracket(doc, line, offset, 1)
	if ref == scanner.NotFound || ref == line {
		return edit.Transform{}, false
	}

	text := in.CurrentIndent(ref, false) + "}"
	e.logger.Debug("closer aligned", logging.FieldLine, line, logging.FieldIndent, ref)
	return edit.New(lineStart, offset-lineStart+length, text), true
}
