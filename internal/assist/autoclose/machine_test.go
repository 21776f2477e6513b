package autoclose

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nescassist/internal/assist/edit"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// host plays the editor: it applies edits and reports them back.
type host struct {
	t     *testing.T
	buf   *buffer.Buffer
	m     *Machine
	caret int
}

func newHost(t *testing.T, text string, opts ...Option) *host {
	t.Helper()
	return &host{t: t, buf: buffer.NewBufferFromString(text), m: New(opts...), caret: len(text)}
}

func (h *host) apply(tr edit.Transform) {
	h.t.Helper()
	if !tr.IsNoOp() {
		c, err := h.buf.ApplyEdit(tr.Edit())
		require.NoError(h.t, err)
		for _, f := range h.m.DocumentChanged(h.buf.Snapshot(), c) {
			h.apply(f)
		}
	}
	h.caret = tr.Caret
	h.m.CaretMoved(h.caret)
}

func (h *host) edit(offset, length int, text string) {
	h.t.Helper()
	h.apply(edit.New(offset, length, text))
}

func (h *host) typeChar(c byte) Result {
	h.t.Helper()
	r, err := h.m.OnTypedChar(h.buf.Snapshot(), KeyEvent{Char: c, Offset: h.caret})
	require.NoError(h.t, err)
	switch {
	case r.Transform != nil:
		h.apply(*r.Transform)
	case !r.Consumed:
		h.edit(h.caret, 0, string(c))
	}
	return r
}

func (h *host) typeString(s string) {
	h.t.Helper()
	for i := 0; i < len(s); i++ {
		h.typeChar(s[i])
	}
}

func TestParenAtEndOfLine(t *testing.T) {
	h := newHost(t, "f")
	r := h.typeChar('(')

	assert.True(t, r.Consumed)
	assert.Equal(t, "f()", h.buf.Text())
	assert.Equal(t, 2, h.caret)
	assert.Equal(t, 1, h.m.Depth())
	assert.True(t, h.m.Registry().HasCategory(Category))

	levels := h.m.Levels()
	require.Len(t, levels, 1)
	assert.Equal(t, 1, levels[0].Open)
	assert.Equal(t, 2, levels[0].Close)
	assert.Equal(t, byte(')'), levels[0].Closer)
	assert.NotEqual(t, uuid.Nil, levels[0].ID)
}

func TestParenBeforeIdentifier(t *testing.T) {
	h := newHost(t, "x")
	h.caret = 0
	r := h.typeChar('(')

	assert.False(t, r.Consumed)
	assert.Equal(t, "(x", h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestAdmission(t *testing.T) {
	const atEnd = -1
	tests := []struct {
		name   string
		text   string
		offset int
		char   byte
		opts   func(*Options)
		want   bool
	}{
		{"paren before paren", "f(", 1, '(', nil, false},
		{"paren before semicolon", ";", 0, '(', nil, true},
		{"paren before keyword", "return", 0, '(', nil, false},
		{"bracket at end", "a", atEnd, '[', nil, true},
		{"bracket before identifier", "a", 0, '[', nil, false},
		{"brackets disabled", "f", atEnd, '(', func(o *Options) { o.CloseBrackets = false }, false},
		{"smart insert off", "f", atEnd, '(', func(o *Options) { o.SmartInsert = false }, false},
		{"quote after operator", "x = ", atEnd, '"', nil, true},
		{"quote after identifier", "abc", atEnd, '"', nil, false},
		{"strings disabled", "x = ", atEnd, '\'', func(o *Options) { o.CloseStrings = false }, false},
		{"angle after interface name", "uses interface Timer", atEnd, '<', nil, true},
		{"angle at statement start", "x; ", atEnd, '<', nil, true},
		{"angle in comparison", "if (a ", atEnd, '<', nil, false},
		{"angle disabled", "x; ", atEnd, '<', func(o *Options) { o.CloseAngularBrackets = false }, false},
		{"inside line comment", "// f", atEnd, '(', nil, false},
		{"inside string", `s = "ab`, atEnd, '(', nil, false},
		{"not an opener", "f", atEnd, '{', nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			doc := buffer.NewSnapshot(tt.text)
			offset := tt.offset
			if offset == atEnd {
				offset = doc.Len()
			}

			r, err := New(WithOptions(opts)).OnTypedChar(doc, KeyEvent{Char: tt.char, Offset: offset})
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Consumed)
		})
	}
}

func TestSkipOverCloser(t *testing.T) {
	h := newHost(t, "f")
	h.typeString("(a)")

	assert.Equal(t, "f(a)", h.buf.Text())
	assert.Equal(t, 4, h.caret)
	assert.Zero(t, h.m.Depth())
	assert.False(t, h.m.Registry().HasCategory(Category))
}

func TestNestedPairs(t *testing.T) {
	h := newHost(t, "f")
	h.typeString("((")
	assert.Equal(t, "f(())", h.buf.Text())
	assert.Equal(t, 2, h.m.Depth())

	h.typeChar(')')
	assert.Equal(t, 1, h.m.Depth())
	h.typeChar(')')
	assert.Equal(t, "f(())", h.buf.Text())
	assert.Equal(t, 5, h.caret)
	assert.Zero(t, h.m.Depth())
}

func TestQuoteSkipAndEscape(t *testing.T) {
	h := newHost(t, "x = ")
	h.typeString(`"a"`)
	assert.Equal(t, `x = "a"`, h.buf.Text())
	assert.Zero(t, h.m.Depth())

	h = newHost(t, "x = ")
	h.typeString(`"\"`)
	assert.Equal(t, `x = "\""`, h.buf.Text())
	assert.Equal(t, 1, h.m.Depth())

	h.typeChar('"')
	assert.Equal(t, `x = "\""`, h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestLineBreakAfterBraceExitsAll(t *testing.T) {
	h := newHost(t, "f")
	h.typeString("({")
	require.Equal(t, "f({)", h.buf.Text())
	require.Equal(t, 1, h.m.Depth())

	r := h.typeChar('\n')
	assert.False(t, r.Consumed)
	assert.Nil(t, r.Transform)
	assert.Equal(t, "f({\n)", h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestLineBreakJumpsPastCloser(t *testing.T) {
	h := newHost(t, "f")
	h.typeChar('(')
	r := h.typeChar('\n')

	assert.True(t, r.Consumed)
	assert.Equal(t, "f()", h.buf.Text())
	assert.Equal(t, 3, h.caret)
	assert.Zero(t, h.m.Depth())
}

func TestDeletingOpenerRemovesOrphanedCloser(t *testing.T) {
	h := newHost(t, "f")
	h.typeChar('(')
	require.Equal(t, "f()", h.buf.Text())

	h.edit(1, 1, "")
	assert.Equal(t, "f", h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestDeletingCallWithOpenerRemovesOrphanedCloser(t *testing.T) {
	h := newHost(t, "x = ")
	h.typeString("f(")
	require.Equal(t, "x = f()", h.buf.Text())
	require.Equal(t, 1, h.m.Depth())

	h.edit(4, 2, "")
	assert.Equal(t, "x = ", h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestDeletingNestedCallKeepsOuterPair(t *testing.T) {
	h := newHost(t, "g")
	h.typeString("(f(")
	require.Equal(t, "g(f())", h.buf.Text())
	require.Equal(t, 2, h.m.Depth())

	h.edit(2, 2, "")
	assert.Equal(t, "g()", h.buf.Text())
	require.Equal(t, 1, h.m.Depth())
	assert.Equal(t, 2, h.m.Levels()[0].Close)
}

func TestExternalEditKeepsCloser(t *testing.T) {
	h := newHost(t, "x\nf")
	h.typeChar('(')

	h.edit(0, 0, "y")
	assert.Equal(t, "yx\nf()", h.buf.Text())
	assert.Zero(t, h.m.Depth())
}

func TestEditInsideGapShiftsCloser(t *testing.T) {
	h := newHost(t, "x\nf")
	h.typeChar('(')
	h.typeString("ab")

	levels := h.m.Levels()
	require.Len(t, levels, 1)
	assert.Equal(t, 3, levels[0].Open)
	assert.Equal(t, 6, levels[0].Close)
}

func TestCaretLeavingEndsLevel(t *testing.T) {
	h := newHost(t, "f")
	h.typeChar('(')
	h.m.CaretMoved(0)
	assert.Zero(t, h.m.Depth())
	assert.False(t, h.m.Registry().HasCategory(Category))
}

func TestUnappliedPairIsForgotten(t *testing.T) {
	m := New()
	buf := buffer.NewBufferFromString("f")
	r, err := m.OnTypedChar(buf.Snapshot(), KeyEvent{Char: '(', Offset: 1})
	require.NoError(t, err)
	require.True(t, r.Consumed)

	c, err := buf.ApplyEdit(buffer.NewInsert(1, "x"))
	require.NoError(t, err)
	assert.Empty(t, m.DocumentChanged(buf.Snapshot(), c))
	assert.Zero(t, m.Depth())
}

func TestReset(t *testing.T) {
	h := newHost(t, "f")
	h.typeString("((")
	h.m.Reset()
	assert.Zero(t, h.m.Depth())
	assert.False(t, h.m.Registry().HasCategory(Category))
}

func TestOnTypedCharRange(t *testing.T) {
	_, err := New().OnTypedChar(buffer.NewSnapshot("f"), KeyEvent{Char: '(', Offset: 5})
	require.ErrorIs(t, err, buffer.ErrRangeInvalid)
}
