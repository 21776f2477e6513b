package assist

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dshills/nescassist/internal/assist/autoclose"
	"github.com/dshills/nescassist/internal/assist/autoindent"
	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/assist/indent"
	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/assist/token"
	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// Option is a functional option for configuring an Assistant.
type Option func(*Assistant)

// WithConfig sets the configuration the assistant starts with.
func WithConfig(cfg *config.Config) Option {
	return func(a *Assistant) {
		if cfg != nil {
			a.cfg = cfg.Clone()
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Assistant answers structural queries and reacts to edits.
type Assistant struct {
	cfg     *config.Config
	logger  *log.Logger
	engine  *autoindent.Engine
	machine *autoclose.Machine
}

// New creates an assistant.
func New(opts ...Option) *Assistant {
	a := &Assistant{cfg: config.Default(), logger: logging.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.engine = autoindent.New(
		autoindent.WithOptions(AutoIndentOptions(a.cfg)),
		autoindent.WithLogger(a.logger),
	)
	a.machine = autoclose.New(
		autoclose.WithOptions(AutoCloseOptions(a.cfg)),
		autoclose.WithLogger(a.logger),
	)
	return a
}

// IndentOptions derives indentation options from cfg.
func IndentOptions(cfg *config.Config) indent.Options {
	return indent.Options{TabWidth: cfg.Editor.TabSize, InsertSpaces: cfg.Editor.InsertSpaces}
}

// AutoIndentOptions derives auto-indent options from cfg.
func AutoIndentOptions(cfg *config.Config) autoindent.Options {
	return autoindent.Options{
		Indent:            IndentOptions(cfg),
		CloseBraces:       cfg.Assist.CloseBraces,
		PasteContextLines: cfg.Assist.PasteContextLines,
	}
}

// AutoCloseOptions derives pairing options from cfg.
func AutoCloseOptions(cfg *config.Config) autoclose.Options {
	return autoclose.Options{
		SmartInsert:          cfg.Assist.SmartInsert,
		CloseBrackets:        cfg.Assist.CloseBrackets,
		CloseAngularBrackets: cfg.Assist.CloseAngularBrackets,
		CloseStrings:         cfg.Assist.CloseStrings,
	}
}

// Config returns a copy of the active configuration.
func (a *Assistant) Config() *config.Config {
	return a.cfg.Clone()
}

// Configure switches to cfg. Active bracket pairs survive.
func (a *Assistant) Configure(cfg *config.Config) {
	a.cfg = cfg.Clone()
	a.engine = autoindent.New(
		autoindent.WithOptions(AutoIndentOptions(a.cfg)),
		autoindent.WithLogger(a.logger),
	)
	a.machine.SetOptions(AutoCloseOptions(a.cfg))
	a.logger.Debug("assistant reconfigured",
		logging.FieldIndent, IndentOptions(a.cfg).Unit(),
		"smart_insert", a.cfg.Assist.SmartInsert)
}

// Classify maps a token text to its kind.
func (a *Assistant) Classify(text string) token.Kind {
	return token.Classify(text)
}

// Tokens returns every token of doc in order.
func (a *Assistant) Tokens(doc buffer.Document) []token.Token {
	var out []token.Token
	token.Walk(doc, 0, doc.Len(), func(t token.Token) bool {
		out = append(out, t)
		return true
	})
	return out
}

// Scanner returns a heuristic scanner over doc.
func (a *Assistant) Scanner(doc buffer.Document) *scanner.Scanner {
	return scanner.New(doc)
}

// Indenter returns an indenter over doc using the configured indentation.
func (a *Assistant) Indenter(doc buffer.Document) *indent.Indenter {
	return indent.New(doc, IndentOptions(a.cfg))
}

// MatchPeer returns the offset of the bracket matching the one at offset,
// or scanner.NotFound.
func (a *Assistant) MatchPeer(doc buffer.Document, offset int) (int, error) {
	if err := buffer.CheckRange(doc, offset, 1); err != nil {
		return scanner.NotFound, fmt.Errorf("match at %d: %w", offset, err)
	}
	return scanner.New(doc).FindPeer(offset), nil
}

// ComputeIndent returns the indentation line should have. The boolean is
// false when the line starts outside code.
func (a *Assistant) ComputeIndent(doc buffer.Document, line int) (string, bool, error) {
	if line < 0 || line >= doc.LineCount() {
		return "", false, fmt.Errorf("indent line %d: %w", line, buffer.ErrOffsetOutOfRange)
	}
	s, ok := a.Indenter(doc).ComputeIndent(line)
	return s, ok, nil
}

// ReactToInsert proposes the transform for replacing length bytes at
// offset with text.
func (a *Assistant) ReactToInsert(doc buffer.Document, offset, length int, text string) (edit.Transform, bool, error) {
	return a.engine.ReactToInsert(doc, offset, length, text)
}

// ReactToPaste proposes the reindented form of a multi-line paste.
func (a *Assistant) ReactToPaste(doc buffer.Document, offset, length int, text string) (edit.Transform, bool, error) {
	return a.engine.ReactToPaste(doc, offset, length, text)
}

// Reindent returns doc with every line reindented.
func (a *Assistant) Reindent(doc buffer.Document) (string, error) {
	return a.engine.Reindent(doc)
}

// OnTypedChar runs the bracket pairing rules for a typed character.
func (a *Assistant) OnTypedChar(doc buffer.Document, ev autoclose.KeyEvent) (autoclose.Result, error) {
	return a.machine.OnTypedChar(doc, ev)
}

// CaretMoved reports a caret move.
func (a *Assistant) CaretMoved(offset int) {
	a.machine.CaretMoved(offset)
}

// DocumentChanged reports an applied edit and returns the follow-up edits
// to apply.
func (a *Assistant) DocumentChanged(doc buffer.Document, c buffer.Change) []edit.Transform {
	return a.machine.DocumentChanged(doc, c)
}

// PairDepth returns the number of active bracket pairs.
func (a *Assistant) PairDepth() int {
	return a.machine.Depth()
}

// Pairs returns the active bracket pairs, innermost last.
func (a *Assistant) Pairs() []autoclose.Level {
	return a.machine.Levels()
}

// ResetPairs forgets every active bracket pair.
func (a *Assistant) ResetPairs() {
	a.machine.Reset()
}
