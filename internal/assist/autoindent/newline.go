package autoindent

import (
	"strings"

	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// newline indents the line a line break at offset opens. A line break ends
// a line comment, so the line is treated like code. Inside a block comment,
// literal or directive the new line keeps the current indentation.
func (e *Engine) newline(doc buffer.Document, offset int, delim string) (edit.Transform, bool) {
	in := e.indenter(doc)
	sc := in.Scanner()

	line := doc.LineOfOffset(offset)
	lineStart := doc.LineStartOffset(line)
	lineEnd := buffer.LineEndOffset(doc, line)
	next := firstNonSpace(doc, offset, lineEnd)

	var b strings.Builder
	b.WriteString(delim)

	region := token.RegionAt(doc, 0, offset)
	switch region {
	case token.RegionCode, token.RegionLineComment:
	default:
		b.WriteString(in.CurrentIndent(line, false))
		e.logger.Debug("newline keeps indent", logging.FieldLine, line, logging.FieldReason, region.String())
		return edit.New(offset, 0, b.String()), true
	}

	if c, ok := doc.ByteAt(next); ok && region == token.RegionCode && next < lineEnd && c == '}' {
		ref := indent.FindMatchingOpenBracket(doc, line, next, 1)
		if ref == scanner.NotFound {
			ref = line
		}
		b.WriteString(in.CurrentIndent(ref, false))
		e.logger.Debug("newline before closer", logging.FieldLine, line, logging.FieldIndent, ref)
		return edit.New(offset, 0, b.String()), true
	}

	current := in.CurrentIndent(line, false)
	b.WriteString(current)
	if indent.Balance(doc, lineStart, offset, true) <= 0 {
		return edit.New(offset, 0, b.String()), true
	}

	b.WriteString(in.Options().Unit())
	caret := offset + b.Len()

	brace := sc.FindOpeningPeer(offset, lineStart, token.LBrace, token.RBrace)
	if e.opts.CloseBraces && next == lineEnd && brace != scanner.NotFound && !e.blockClosed(in, brace) {
		b.WriteString(delim)
		b.WriteString(current)
		b.WriteByte('}')
		if sc.LooksLikeCompositeTypeDefinition(brace, scanner.Unbound) || sc.LooksLikeInitializer(brace, scanner.Unbound) {
			b.WriteByte(';')
		}
		e.logger.Debug("block completed", logging.FieldOffset, brace, logging.FieldLine, line)
	}
	return edit.New(offset, 0, b.String()).WithCaret(caret), true
}

// blockClosed reports whether the { at brace already has a } lined up
// with the line holding the {.
func (e *Engine) blockClosed(in *indent.Indenter, brace int) bool {
	doc := in.Scanner().Document()
	closer := in.Scanner().FindClosingPeer(brace+1, scanner.Unbound, token.LBrace, token.RBrace)
	if closer == scanner.NotFound {
		return false
	}
	openLine := doc.LineOfOffset(brace)
	closeLine := doc.LineOfOffset(closer)
	if closeLine == openLine {
		return true
	}
	tw := in.TabWidth()
	return indent.VisualLength(in.CurrentIndent(closeLine, false), tw) ==
		indent.VisualLength(in.CurrentIndent(openLine, false), tw)
}
