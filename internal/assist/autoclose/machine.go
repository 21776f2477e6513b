package autoclose

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/engine/tracking"
	"github.com/dshills/nescassist/internal/logging"
)

// Options selects which openers get a closer inserted.
type Options struct {
	// SmartInsert enables pair insertion altogether.
	SmartInsert bool

	// CloseBrackets pairs ( and [.
	CloseBrackets bool

	// CloseAngularBrackets pairs < in type argument lists.
	CloseAngularBrackets bool

	// CloseStrings pairs ' and ".
	CloseStrings bool
}

// DefaultOptions enables every pair.
func DefaultOptions() Options {
	return Options{
		SmartInsert:          true,
		CloseBrackets:        true,
		CloseAngularBrackets: true,
		CloseStrings:         true,
	}
}

// KeyEvent is a character about to be typed over the selection
// [Offset, Offset+Length). A line break is Char '\n' or '\r'.
type KeyEvent struct {
	Char   byte
	Offset int
	Length int
}

// Result is the machine's answer to a key event. When Consumed is set the
// host must not insert the character itself. Transform, when set, is the
// edit to apply instead; it may only move the caret.
type Result struct {
	Consumed  bool
	Transform *edit.Transform
}

// Option is a functional option for configuring a Machine.
type Option func(*Machine)

// WithOptions replaces the machine options.
func WithOptions(opts Options) Option {
	return func(m *Machine) {
		m.opts = opts
	}
}

// WithLogger sets the logger level changes are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRegistry tracks pair positions in an existing registry.
func WithRegistry(r *tracking.Registry) Option {
	return func(m *Machine) {
		if r != nil {
			m.registry = r
		}
	}
}

// pending is a pair insertion handed to the host and not yet applied.
type pending struct {
	offset int
	length int
	text   string
	closer byte
}

// Machine is the auto-closing state machine. It is not safe for concurrent
// use; the host drives it from the goroutine that owns the document.
type Machine struct {
	opts     Options
	logger   *log.Logger
	registry *tracking.Registry
	levels   []*level
	pending  *pending
}

// New creates a machine.
func New(opts ...Option) *Machine {
	m := &Machine{opts: DefaultOptions(), logger: logging.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = tracking.NewRegistry()
	}
	m.logger = logging.WithComponent(m.logger, "autoclose")
	return m
}

// Options returns the machine options.
func (m *Machine) Options() Options {
	return m.opts
}

// SetOptions replaces the options. Active levels are kept.
func (m *Machine) SetOptions(opts Options) {
	m.opts = opts
}

// Depth returns the number of active levels.
func (m *Machine) Depth() int {
	return len(m.levels)
}

// Levels returns the active levels, innermost last.
func (m *Machine) Levels() []Level {
	out := make([]Level, len(m.levels))
	for i, l := range m.levels {
		out[i] = l.snapshot()
	}
	return out
}

// Registry returns the registry pair positions are tracked in.
func (m *Machine) Registry() *tracking.Registry {
	return m.registry
}

// Reset ends every level without touching the document.
func (m *Machine) Reset() {
	for len(m.levels) > 0 {
		m.pop("reset")
	}
	m.pending = nil
}

// OnTypedChar decides what typing ev.Char should do.
func (m *Machine) OnTypedChar(doc buffer.Document, ev KeyEvent) (Result, error) {
	if err := buffer.CheckRange(doc, ev.Offset, ev.Length); err != nil {
		return Result{}, fmt.Errorf("typed %q at %d+%d: %w", ev.Char, ev.Offset, ev.Length, err)
	}

	if r, ok := m.exit(doc, ev); ok {
		return r, nil
	}

	ok, reason := m.admit(doc, ev.Char, ev.Offset, ev.Length)
	if !ok {
		if reason != "not an opener" {
			m.logger.Debug("pair refused", logging.FieldChar, string(ev.Char), logging.FieldReason, reason)
		}
		return Result{}, nil
	}

	closer := closerOf(ev.Char)
	text := string([]byte{ev.Char, closer})
	m.pending = &pending{offset: ev.Offset, length: ev.Length, text: text, closer: closer}
	t := edit.New(ev.Offset, ev.Length, text).WithCaret(ev.Offset + 1)
	return Result{Consumed: true, Transform: &t}, nil
}

// exit applies the exit rules of the innermost level.
func (m *Machine) exit(doc buffer.Document, ev KeyEvent) (Result, bool) {
	if len(m.levels) == 0 {
		return Result{}, false
	}
	top := m.levels[len(m.levels)-1]
	if top.escape != noEscape && ev.Offset > 0 {
		if c, _ := doc.ByteAt(ev.Offset - 1); c == top.escape {
			return Result{}, false
		}
	}

	switch ev.Char {
	case top.closer:
		if top.open.Offset > ev.Offset || top.close.Offset < ev.Offset {
			return Result{}, false
		}
		if top.close.Offset == ev.Offset && ev.Length == 0 && !top.close.IsDeleted() {
			caret := top.close.End()
			m.pop("closer typed")
			t := edit.New(ev.Offset, 0, "").WithCaret(caret)
			return Result{Consumed: true, Transform: &t}, true
		}
	case '\n', '\r':
		if ev.Offset > 0 {
			if c, _ := doc.ByteAt(ev.Offset - 1); c == '{' {
				for len(m.levels) > 0 {
					m.pop("line break after {")
				}
				return Result{}, true
			}
		}
		if top.close.IsDeleted() || !top.gapContains(ev.Offset) {
			return Result{}, false
		}
		caret := top.close.End()
		m.pop("line break")
		t := edit.New(ev.Offset, 0, "").WithCaret(caret)
		return Result{Consumed: true, Transform: &t}, true
	}
	return Result{}, false
}

// CaretMoved ends the levels whose pair no longer surrounds offset.
func (m *Machine) CaretMoved(offset int) {
	for len(m.levels) > 0 {
		top := m.levels[len(m.levels)-1]
		if !top.open.IsDeleted() && !top.close.IsDeleted() && top.gapContains(offset) {
			return
		}
		m.pop("caret left")
	}
}

// DocumentChanged updates the tracked pairs for an edit the host has
// applied. It returns follow-up edits the host should apply next, in order.
// They are sorted by descending offset so that applying one leaves the
// offsets of the rest valid.
func (m *Machine) DocumentChanged(doc buffer.Document, c buffer.Change) []edit.Transform {
	p := m.pending
	m.pending = nil

	var external []*level
	for i := len(m.levels) - 1; i >= 0; i-- {
		l := m.levels[i]
		if l.open.IsDeleted() || l.close.IsDeleted() || !l.gapCovers(c.Offset, c.OldEnd()) {
			external = append(external, l)
			continue
		}
		break
	}

	m.registry.Update(c)

	var cleanup []edit.Transform
	for _, l := range external {
		if l.orphaned() {
			cleanup = append(cleanup, edit.New(l.close.Offset, l.close.Length, ""))
			m.logger.Debug("orphaned closer removed", logging.FieldSession, l.id, logging.FieldOffset, l.close.Offset)
		}
		m.pop("external modification")
	}
	slices.SortFunc(cleanup, func(a, b edit.Transform) int { return b.Offset - a.Offset })

	if p != nil && c.Offset == p.offset && c.OldLength == p.length && c.NewText == p.text {
		m.push(doc, p)
	}
	return cleanup
}

func (m *Machine) push(doc buffer.Document, p *pending) {
	if len(m.levels) == 0 {
		m.registry.AddCategory(Category)
	}
	l := &level{
		id:     uuid.New(),
		open:   tracking.NewPosition(p.offset, 1),
		close:  tracking.NewPosition(p.offset+1, 1),
		closer: p.closer,
		escape: escapeOf(p.closer),
	}
	_ = m.registry.Add(Category, l.open)
	_ = m.registry.Add(Category, l.close)
	m.levels = append(m.levels, l)
	m.logger.Debug("pair inserted",
		logging.FieldSession, l.id,
		logging.FieldChar, doc.TextRange(p.offset, p.offset+2),
		logging.FieldDepth, len(m.levels))
}

func (m *Machine) pop(reason string) {
	l := m.levels[len(m.levels)-1]
	m.levels = m.levels[:len(m.levels)-1]
	_ = m.registry.Remove(Category, l.open)
	_ = m.registry.Remove(Category, l.close)
	if len(m.levels) == 0 {
		_ = m.registry.RemoveCategory(Category)
	}
	m.logger.Debug("pair left",
		logging.FieldSession, l.id,
		logging.FieldReason, reason,
		logging.FieldDepth, len(m.levels))
}
