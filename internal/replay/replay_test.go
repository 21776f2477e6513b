package replay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/logging"
)

func newRunner() *Runner {
	return NewRunner(WithLogger(logging.Discard()))
}

func TestScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			res, err := newRunner().Run(context.Background(), s)
			require.NoError(t, err)
			assert.True(t, res.Passed(), "mismatches: %v", res.Mismatches)
			assert.Equal(t, len(s.Steps), res.Steps)
		})
	}
}

func TestMismatchIsReported(t *testing.T) {
	s, err := Parse("inline", []byte(`
text: "x"
steps:
  - type: "y"
  - expect: "x|"
  - type: "z"
`))
	require.NoError(t, err)

	res, err := newRunner().Run(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, res.Passed())
	require.Len(t, res.Mismatches, 1)
	assert.Equal(t, Mismatch{Step: 2, Want: "x|", Got: "xy|"}, res.Mismatches[0])
	assert.Equal(t, "xyz|", res.Output)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "two actions",
			source: "steps:\n  - type: a\n    move: 0\n",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidStep)
			},
		},
		{
			name:   "empty step",
			source: "steps:\n  - {}\n",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidStep)
			},
		},
		{
			name:   "unknown field",
			source: "txt: a\n",
			check: func(t *testing.T, err error) {
				var pe *config.ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "inline", pe.Path)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline", []byte(tt.source))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestScriptConfig(t *testing.T) {
	s, err := Parse("inline", []byte("config:\n  editor:\n    tabSize: 2\n"))
	require.NoError(t, err)

	cfg, err := s.ApplyConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editor.TabSize)
	assert.True(t, cfg.Assist.CloseBraces)

	s, err = Parse("inline", []byte("config:\n  editor:\n    tabSize: 99\n"))
	require.NoError(t, err)
	_, err = s.ApplyConfig(config.Default())
	require.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestSetConfigAppliesToLaterRuns(t *testing.T) {
	s, err := Parse("inline", []byte("text: \"f() {\"\nsteps:\n  - type: \"\\n\"\n"))
	require.NoError(t, err)

	r := newRunner()
	res, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "f() {\n\t|\n}", res.Output)

	cfg := config.Default()
	cfg.Editor.TabSize = 2
	cfg.Editor.InsertSpaces = true
	r.SetConfig(cfg)
	assert.Same(t, cfg, r.Config())

	res, err = r.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "f() {\n  |\n}", res.Output)
}

func TestScriptConfigDoesNotLeak(t *testing.T) {
	spaced, err := Parse("spaced", []byte("text: \"f() {\"\nconfig:\n  editor:\n    insertSpaces: true\nsteps:\n  - type: \"\\n\"\n"))
	require.NoError(t, err)
	plain, err := Parse("plain", []byte("text: \"f() {\"\nsteps:\n  - type: \"\\n\"\n"))
	require.NoError(t, err)

	r := newRunner()
	res, err := r.Run(context.Background(), spaced)
	require.NoError(t, err)
	assert.Equal(t, "f() {\n    |\n}", res.Output)

	res, err = r.Run(context.Background(), plain)
	require.NoError(t, err)
	assert.Equal(t, "f() {\n\t|\n}", res.Output)
}

func TestStepFailureStopsRun(t *testing.T) {
	s, err := Parse("inline", []byte("text: ab\nsteps:\n  - move: 10\n"))
	require.NoError(t, err)

	_, err = newRunner().Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (move)")
}

func TestRunCanceled(t *testing.T) {
	s, err := Parse("inline", []byte("steps:\n  - type: a\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newRunner().Run(ctx, s)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrScriptNotFound)
}
