package indent

import (
	"strings"

	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// DefaultTabWidth is the tab width used when none is configured.
const DefaultTabWidth = 4

// Options configures indentation.
type Options struct {
	// TabWidth is the number of columns a tab advances to.
	TabWidth int

	// InsertSpaces indents with TabWidth spaces instead of a tab.
	InsertSpaces bool
}

// DefaultOptions returns tab indentation with a tab width of 4.
func DefaultOptions() Options {
	return Options{TabWidth: DefaultTabWidth}
}

// Unit returns the string for one indentation step.
func (o Options) Unit() string {
	if o.InsertSpaces {
		return strings.Repeat(" ", o.tabWidth())
	}
	return "\t"
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return o.TabWidth
}

// Indenter computes indentation for the lines of one document.
type Indenter struct {
	doc  buffer.Document
	sc   *scanner.Scanner
	opts Options
}

// New creates an indenter for doc.
func New(doc buffer.Document, opts Options) *Indenter {
	return &Indenter{doc: doc, sc: scanner.New(doc), opts: opts}
}

// Options returns the indentation options.
func (in *Indenter) Options() Options {
	return in.opts
}

// TabWidth returns the effective tab width.
func (in *Indenter) TabWidth() int {
	return in.opts.tabWidth()
}

// Scanner returns the scanner the indenter works with.
func (in *Indenter) Scanner() *scanner.Scanner {
	return in.sc
}

// CurrentIndent returns the whitespace at the start of line. With
// skipLineCommentPrefix, a // in column 0 is stepped over first so that
// commented-out code keeps the indentation of its content.
func (in *Indenter) CurrentIndent(line int, skipLineCommentPrefix bool) string {
	text := buffer.LineText(in.doc, line)
	if skipLineCommentPrefix && strings.HasPrefix(text, "//") {
		text = text[2:]
	}
	return LeadingWhitespace(text)
}

// ReferencePosition returns the offset whose line anchors the indentation
// at offset: the innermost opener still open at offset, or the start of
// the line when offset is at top level.
func (in *Indenter) ReferencePosition(offset int) int {
	opener := in.sc.FindEnclosingOpener(offset, scanner.Unbound)
	if opener.IsEOF() {
		return in.doc.LineStartOffset(in.doc.LineOfOffset(offset))
	}
	return opener.Start
}

// ComputeIndent returns the indentation line should have. It reports false
// when the line starts inside a comment, literal or directive and no
// correction should be made.
func (in *Indenter) ComputeIndent(line int) (string, bool) {
	lineStart := in.doc.LineStartOffset(line)
	lineEnd := lineStart + in.doc.LineLen(line)
	if !in.sc.InCode(lineStart, scanner.Unbound) {
		return "", false
	}

	first := in.sc.NextToken(lineStart, lineEnd)
	if first.Kind.IsClosing() {
		peer := in.sc.FindOpeningPeer(lineStart, scanner.Unbound, first.Kind.Peer(), first.Kind)
		if peer == scanner.NotFound {
			return "", true
		}
		return in.CurrentIndent(in.doc.LineOfOffset(peer), false), true
	}

	opener := in.sc.FindEnclosingOpener(lineStart, scanner.Unbound)
	if opener.IsEOF() {
		return "", true
	}
	unit := in.opts.Unit()
	base := in.CurrentIndent(in.doc.LineOfOffset(opener.Start), false)
	if opener.Kind != token.LBrace {
		return base + unit, true
	}

	if ctrl := in.controlStatement(lineStart, opener.End); ctrl != scanner.NotFound {
		ctrlIndent := in.CurrentIndent(in.doc.LineOfOffset(ctrl), false)
		if first.Kind == token.LBrace {
			return ctrlIndent, true
		}
		return ctrlIndent + unit, true
	}

	if first.Kind != token.Case && first.Kind != token.Default {
		if label := in.lastLabel(opener.End, lineStart); label != scanner.NotFound {
			return in.CurrentIndent(in.doc.LineOfOffset(label), false) + unit, true
		}
	}
	return base + unit, true
}

// controlStatement returns the offset of the if, for, while, else or do
// whose body has not started yet at lineStart, or NotFound.
func (in *Indenter) controlStatement(lineStart, limit int) int {
	prev := in.sc.PreviousToken(lineStart, limit)
	switch prev.Kind {
	case token.Else, token.Do:
		return prev.Start
	case token.RParen:
		paren := in.sc.FindOpeningPeer(prev.Start, limit, token.LParen, token.RParen)
		if paren == scanner.NotFound {
			return scanner.NotFound
		}
		kw := in.sc.PreviousToken(paren, limit)
		switch kw.Kind {
		case token.If, token.For, token.While:
			return kw.Start
		}
	}
	return scanner.NotFound
}

// lastLabel returns the offset of the last case or default label at the
// top nesting level of [blockStart, lineStart), or NotFound.
func (in *Indenter) lastLabel(blockStart, lineStart int) int {
	label := scanner.NotFound
	depth := 0
	token.Walk(in.doc, blockStart, lineStart, func(t token.Token) bool {
		switch {
		case t.Kind.IsOpening():
			depth++
		case t.Kind.IsClosing():
			depth--
		case depth == 0 && (t.Kind == token.Case || t.Kind == token.Default):
			label = t.Start
		}
		return true
	})
	return label
}
