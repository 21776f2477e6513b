package session

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dshills/nescassist/internal/assist"
	"github.com/dshills/nescassist/internal/assist/autoclose"
	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// CaretMarker is the string Render inserts at the caret.
const CaretMarker = "|"

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithAssistant sets the assistant keystrokes go through.
func WithAssistant(a *assist.Assistant) Option {
	return func(s *Session) {
		if a != nil {
			s.asst = a
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistoryLimit caps the number of undo groups.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.history = newHistory(n)
	}
}

// WithCaret places the caret. Out of range offsets are clamped.
func WithCaret(offset int) Option {
	return func(s *Session) {
		s.caret = offset
	}
}

// Session is an editing host with one caret.
type Session struct {
	id      uuid.UUID
	buf     *buffer.Buffer
	asst    *assist.Assistant
	caret   int
	history *history
	current *group
	logger  *log.Logger
}

// New creates a session over text with the caret at its end.
func New(text string, opts ...Option) *Session {
	buf := buffer.NewBufferFromString(text)
	s := &Session{
		id:      uuid.New(),
		buf:     buf,
		caret:   buf.Len(),
		history: newHistory(DefaultHistoryLimit),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.asst == nil {
		s.asst = assist.New(assist.WithLogger(s.logger))
	}
	s.caret = max(0, min(s.caret, buf.Len()))
	s.logger = s.logger.With(logging.FieldSession, s.id)
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Assistant returns the assistant the session uses.
func (s *Session) Assistant() *assist.Assistant {
	return s.asst
}

// Document returns a snapshot of the buffer.
func (s *Session) Document() buffer.Document {
	return s.buf.Snapshot()
}

// Text returns the buffer content.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Caret returns the caret offset.
func (s *Session) Caret() int {
	return s.caret
}

// Render returns the buffer with CaretMarker at the caret.
func (s *Session) Render() string {
	text := s.buf.Text()
	return text[:s.caret] + CaretMarker + text[s.caret:]
}

// Move places the caret at offset.
func (s *Session) Move(offset int) error {
	if err := buffer.CheckOffset(s.buf.Snapshot(), offset); err != nil {
		return fmt.Errorf("move to %d: %w", offset, err)
	}
	s.caret = offset
	s.asst.CaretMoved(offset)
	return nil
}

// Type types one character at the caret.
func (s *Session) Type(c byte) error {
	s.begin("type")
	defer s.end()

	doc := s.buf.Snapshot()
	r, err := s.asst.OnTypedChar(doc, autoclose.KeyEvent{Char: c, Offset: s.caret})
	if err != nil {
		return err
	}
	switch {
	case r.Transform != nil:
		return s.apply(*r.Transform)
	case r.Consumed:
		return nil
	}

	text := string(c)
	if c == '\n' || c == '\r' {
		text = buffer.DefaultLineDelimiter(doc)
	}
	return s.insert(doc, s.caret, 0, text)
}

// TypeString types text one character at a time.
func (s *Session) TypeString(text string) error {
	for i := 0; i < len(text); i++ {
		if err := s.Type(text[i]); err != nil {
			return fmt.Errorf("type %q at %d: %w", text[i], i, err)
		}
	}
	return nil
}

// Paste inserts text at the caret in one step.
func (s *Session) Paste(text string) error {
	s.begin("paste")
	defer s.end()
	return s.insert(s.buf.Snapshot(), s.caret, 0, text)
}

// Backspace deletes the byte before the caret.
func (s *Session) Backspace() error {
	if s.caret == 0 {
		return nil
	}
	s.begin("backspace")
	defer s.end()
	return s.apply(edit.New(s.caret-1, 1, ""))
}

// Replace replaces length bytes at offset with text without consulting
// the assistant, as another tool editing the buffer would. The caret
// follows the edit.
func (s *Session) Replace(offset, length int, text string) error {
	if err := buffer.CheckRange(s.buf.Snapshot(), offset, length); err != nil {
		return fmt.Errorf("replace at %d+%d: %w", offset, length, err)
	}
	s.begin("replace")
	defer s.end()

	changes, err := s.applyEdit(buffer.NewReplace(offset, length, text))
	if err != nil {
		return err
	}
	caret := s.caret
	for _, c := range changes {
		caret = shiftCaret(caret, c)
	}
	s.caret = caret
	s.asst.CaretMoved(caret)
	return nil
}

// Reindent reindents the whole buffer as one undoable step.
func (s *Session) Reindent() error {
	doc := s.buf.Snapshot()
	text, err := s.asst.Reindent(doc)
	if err != nil {
		return err
	}
	if text == doc.TextRange(0, doc.Len()) {
		return nil
	}
	s.asst.ResetPairs()
	s.begin("reindent")
	defer s.end()
	line := doc.LineOfOffset(s.caret)
	if _, err := s.applyEdit(buffer.NewReplace(0, doc.Len(), text)); err != nil {
		return err
	}
	snap := s.buf.Snapshot()
	s.caret = snap.LineStartOffset(min(line, snap.LineCount()-1))
	return nil
}

// Undo reverts the last action.
func (s *Session) Undo() error {
	g, err := s.history.popUndo()
	if err != nil {
		return err
	}
	s.asst.ResetPairs()
	for i := len(g.changes) - 1; i >= 0; i-- {
		if _, err := s.buf.ApplyEdit(inverse(g.changes[i])); err != nil {
			return fmt.Errorf("undo %s: %w", g.name, err)
		}
	}
	s.caret = g.caretBefore
	s.logger.Debug("undo", logging.FieldStep, g.name)
	return nil
}

// Redo reapplies the last undone action.
func (s *Session) Redo() error {
	g, err := s.history.popRedo()
	if err != nil {
		return err
	}
	s.asst.ResetPairs()
	for _, c := range g.changes {
		if _, err := s.buf.ApplyEdit(replay(c)); err != nil {
			return fmt.Errorf("redo %s: %w", g.name, err)
		}
	}
	s.caret = g.caretAfter
	s.logger.Debug("redo", logging.FieldStep, g.name)
	return nil
}

// insert lets the auto-indent engine react before inserting text.
func (s *Session) insert(doc buffer.Document, offset, length int, text string) error {
	t, ok, err := s.asst.ReactToInsert(doc, offset, length, text)
	if err != nil {
		return err
	}
	if !ok {
		t = edit.New(offset, length, text)
	}
	return s.apply(t)
}

// apply applies t and its follow-ups, then moves the caret.
func (s *Session) apply(t edit.Transform) error {
	caret := t.Caret
	if !t.IsNoOp() {
		changes, err := s.applyEdit(t.Edit())
		if err != nil {
			return err
		}
		for _, c := range changes[1:] {
			caret = shiftCaret(caret, c)
		}
	}
	s.caret = caret
	s.asst.CaretMoved(caret)
	return nil
}

// applyEdit applies e, reports it, and applies the follow-up edits the
// assistant returns. The first change is e's own.
func (s *Session) applyEdit(e buffer.Edit) ([]buffer.Change, error) {
	c, err := s.buf.ApplyEdit(e)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", e, err)
	}
	if s.current != nil {
		s.current.changes = append(s.current.changes, c)
	}
	s.logger.Debug("edit applied",
		logging.FieldOffset, c.Offset,
		logging.FieldLength, c.OldLength,
		logging.FieldText, c.NewText)

	changes := []buffer.Change{c}
	for _, f := range s.asst.DocumentChanged(s.buf.Snapshot(), c) {
		more, err := s.applyEdit(f.Edit())
		if err != nil {
			return changes, err
		}
		changes = append(changes, more...)
	}
	return changes, nil
}

func (s *Session) begin(name string) {
	s.current = &group{name: name, caretBefore: s.caret}
}

func (s *Session) end() {
	g := s.current
	s.current = nil
	g.caretAfter = s.caret
	s.history.push(g)
}

// shiftCaret moves caret over an applied change. A caret inside replaced
// text lands at the start of the change.
func shiftCaret(caret int, c buffer.Change) int {
	switch {
	case caret >= c.OldEnd():
		return caret + c.Delta()
	case caret > c.Offset:
		return c.Offset
	}
	return caret
}

