package indent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nescassist/internal/assist/scanner"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

func TestVisualLength(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"", 4, 0},
		{"\t\t", 4, 8},
		{"ab\t", 4, 4},
		{"  \t", 4, 4},
		{"    ", 4, 4},
		{"\t", 8, 8},
		{"\t", 0, DefaultTabWidth},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VisualLength(tt.text, tt.width), "%q width %d", tt.text, tt.width)
	}
}

func TestDiffIndent(t *testing.T) {
	delta, add := DiffIndent("\t\t", "\t", 4)
	assert.Equal(t, 4, delta)
	assert.Equal(t, "\t", add)

	delta, add = DiffIndent("        ", "    ", 4)
	assert.Equal(t, 4, delta)
	assert.Equal(t, "    ", add)

	delta, add = DiffIndent("\t", "\t\t", 4)
	assert.Equal(t, -4, delta)
	assert.Empty(t, add)

	delta, _ = DiffIndent("\t", "    ", 4)
	assert.Zero(t, delta)
}

func TestCutIndent(t *testing.T) {
	assert.Equal(t, "\tx", CutIndent("\t\tx", 4, 4))
	assert.Equal(t, "  x", CutIndent("\tx", 2, 4))
	assert.Equal(t, "x", CutIndent("  x", 4, 4))
	assert.Equal(t, "  x", CutIndent("      x", 4, 4))
	assert.Equal(t, "\tx", AddIndent("x", "\t"))
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		ignore bool
		want   int
	}{
		{"open", "if (a) {", false, 1},
		{"string", `if (a) { "}" // }`, false, 1},
		{"char", `c = '{';`, false, 0},
		{"block comment", "/* { */ }", false, -1},
		{"comment end resets", "x } */ {", false, 1},
		{"leading closers counted", "} } {", false, -1},
		{"leading closers ignored", "} } {", true, 1},
		{"closers after opener", "} { } }", true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.NewSnapshot(tt.text)
			assert.Equal(t, tt.want, Balance(doc, 0, doc.Len(), tt.ignore))
		})
	}
}

func TestFindMatchingOpenBracket(t *testing.T) {
	doc := buffer.NewSnapshot("a {\n  b\n  }")
	end := doc.LineStartOffset(2) + 2
	assert.Equal(t, 0, FindMatchingOpenBracket(doc, 2, end, 1))
	assert.Equal(t, 2, FindMatchingOpenBracket(doc, 2, end, 0))

	doc = buffer.NewSnapshot("x\n}")
	assert.Equal(t, scanner.NotFound, FindMatchingOpenBracket(doc, 1, doc.Len(), 0))
}

const indented = "module M {\n" +
	"\tuses interface Leds;\n" +
	"}\n" +
	"implementation {\n" +
	"\tevent void f() {\n" +
	"\t\tif (x)\n" +
	"\t\t\ty();\n" +
	"\t\telse\n" +
	"\t\t\tw();\n" +
	"\t\tswitch (v) {\n" +
	"\t\t\tcase 1:\n" +
	"\t\t\t\tz();\n" +
	"\t\t\t\tbreak;\n" +
	"\t\t\tdefault:\n" +
	"\t\t\t\tq();\n" +
	"\t\t}\n" +
	"\t\tcall(a,\n" +
	"\t\t\tb);\n" +
	"\t\twhile (x)\n" +
	"\t\t{\n" +
	"\t\t\tx--;\n" +
	"\t\t}\n" +
	"\t}\n" +
	"}\n"

func TestComputeIndentReproducesIndentedSource(t *testing.T) {
	doc := buffer.NewSnapshot(indented)
	in := New(doc, DefaultOptions())

	lines := strings.Split(strings.TrimSuffix(indented, "\n"), "\n")
	for i, line := range lines {
		got, ok := in.ComputeIndent(i)
		require.True(t, ok, "line %d %q", i, line)
		assert.Equal(t, LeadingWhitespace(line), got, "line %d %q", i, line)
	}
}

func TestComputeIndentOutsideCode(t *testing.T) {
	doc := buffer.NewSnapshot("/* a\n b */\nx\n")
	in := New(doc, DefaultOptions())

	_, ok := in.ComputeIndent(1)
	assert.False(t, ok)

	got, ok := in.ComputeIndent(2)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestComputeIndentWithSpaces(t *testing.T) {
	doc := buffer.NewSnapshot("f() {\ng();\n}")
	in := New(doc, Options{TabWidth: 2, InsertSpaces: true})

	got, ok := in.ComputeIndent(1)
	require.True(t, ok)
	assert.Equal(t, "  ", got)
}

func TestCurrentIndent(t *testing.T) {
	doc := buffer.NewSnapshot("//\tfoo();\n  bar();")
	in := New(doc, DefaultOptions())

	assert.Equal(t, "\t", in.CurrentIndent(0, true))
	assert.Empty(t, in.CurrentIndent(0, false))
	assert.Equal(t, "  ", in.CurrentIndent(1, true))
}

func TestReferencePosition(t *testing.T) {
	doc := buffer.NewSnapshot("x;\nf(a,\n b")
	in := New(doc, DefaultOptions())

	assert.Equal(t, 4, in.ReferencePosition(doc.Len()))
	assert.Equal(t, 0, in.ReferencePosition(1))
	assert.Equal(t, 3, in.ReferencePosition(3))
}

func TestUnit(t *testing.T) {
	assert.Equal(t, "\t", DefaultOptions().Unit())
	assert.Equal(t, "  ", Options{TabWidth: 2, InsertSpaces: true}.Unit())
	assert.Equal(t, "    ", Options{InsertSpaces: true}.Unit())
}
