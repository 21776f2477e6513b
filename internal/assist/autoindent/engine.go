package autoindent

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// DefaultPasteContextLines is the number of lines before a paste that are
// scanned to reindent it.
const DefaultPasteContextLines = 100

// Options configures the engine.
type Options struct {
	// Indent controls the indentation unit and tab width.
	Indent indent.Options

	// CloseBraces completes an unclosed block when a line break follows {.
	CloseBraces bool

	// PasteContextLines caps the context scanned before a paste.
	PasteContextLines int
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		Indent:            indent.DefaultOptions(),
		CloseBraces:       true,
		PasteContextLines: DefaultPasteContextLines,
	}
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithOptions replaces the engine options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithLogger sets the logger decisions are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine computes auto-indent transforms.
type Engine struct {
	opts   Options
	logger *log.Logger
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{opts: DefaultOptions(), logger: logging.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	if e.opts.PasteContextLines <= 0 {
		e.opts.PasteContextLines = DefaultPasteContextLines
	}
	e.logger = logging.WithComponent(e.logger, "autoindent")
	return e
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// ReactToInsert inspects the replacement of length bytes at offset with
// text and returns the transform to apply instead. It reports false when
// the insertion should go through unchanged. Errors are returned only for
// ranges outside doc.
func (e *Engine) ReactToInsert(doc buffer.Document, offset, length int, text string) (edit.Transform, bool, error) {
	if err := buffer.CheckRange(doc, offset, length); err != nil {
		return edit.Transform{}, false, fmt.Errorf("react to insert at %d+%d: %w", offset, length, err)
	}

	switch {
	case length == 0 && isLineDelimiter(text):
		t, ok := e.newline(doc, offset, text)
		return t, ok, nil
	case text == "}":
		t, ok := e.closingBrace(doc, offset, length)
		return t, ok, nil
	case len(text) > 1 && !indent.IsBlank(text):
		return e.ReactToPaste(doc, offset, length, text)
	}
	return edit.Transform{}, false, nil
}

func (e *Engine) indenter(doc buffer.Document) *indent.Indenter {
	return indent.New(doc, e.opts.Indent)
}

func isLineDelimiter(text string) bool {
	return text == "\n" || text == "\r\n" || text == "\r"
}

// firstNonSpace returns the first offset in [from, end) that is not a space
// or tab, or end.
func firstNonSpace(doc buffer.Document, from, end int) int {
	for from < end {
		c, _ := doc.ByteAt(from)
		if c != ' ' && c != '\t' {
			break
		}
		from++
	}
	return from
}

func hasLineBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}
