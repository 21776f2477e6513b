package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nescassist/internal/cli"
	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

const reindented = `module BlinkC {
	uses interface Timer<TMilli>;
}
implementation {
	event void Timer.fired() {
		/* toggle
 * the led */
		call Leds.led0Toggle();
	}
}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand(cli.BuildInfo{})
	assert.Equal(t, "nescassist", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"tokens", "match", "indent", "reindent", "replay", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestTokens(t *testing.T) {
	path := writeFile(t, "a.nc", "x = f(1); // f(")
	out, err := execute(t, "tokens", path)
	require.NoError(t, err)
	assert.Equal(t, "0\t1\tIDENT\tx\n"+
		"2\t3\t=\t=\n"+
		"4\t5\tIDENT\tf\n"+
		"5\t6\t(\t(\n"+
		"6\t7\tIDENT\t1\n"+
		"7\t8\t)\t)\n"+
		"8\t9\t;\t;\n", out)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pos  string
		want string
	}{
		{"14", "46\t3:1\n"},
		{"1:15", "46\t3:1\n"},
		{"46", "14\t1:15\n"},
		{"0", "no match\n"},
	}
	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			out, err := execute(t, "match", filepath.Join("testdata", "block.nc"), tt.pos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMatchBadPosition(t *testing.T) {
	_, err := execute(t, "match", filepath.Join("testdata", "block.nc"), "x:1")
	require.ErrorIs(t, err, cli.ErrInvalidArgument)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "match", filepath.Join("testdata", "block.nc"), "9999")
	require.ErrorIs(t, err, buffer.ErrRangeInvalid)
}

func TestIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"1", "\"\"\t0\n"},
		{"2", "\"\\t\"\t4\n"},
		{"6", "\"\\t\"\t4\n"},
		{"7", "no indentation: line starts inside a comment or literal\n"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, err := execute(t, "indent", filepath.Join("testdata", "block.nc"), tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIndentUsesConfig(t *testing.T) {
	cfg := writeFile(t, "cfg.toml", "[editor]\ntabSize = 2\ninsertSpaces = true\n")
	out, err := execute(t, "--config", cfg, "indent", filepath.Join("testdata", "block.nc"), "6")
	require.NoError(t, err)
	assert.Equal(t, "\"  \"\t2\n", out)
}

func TestBadConfig(t *testing.T) {
	cfg := writeFile(t, "cfg.toml", "[editor]\ntabSize = 0\n")
	_, err := execute(t, "--config", cfg, "indent", filepath.Join("testdata", "block.nc"), "1")
	require.ErrorIs(t, err, config.ErrValidationFailed)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestReindent(t *testing.T) {
	out, err := execute(t, "reindent", filepath.Join("testdata", "block.nc"))
	require.NoError(t, err)
	assert.Equal(t, reindented, out)
}

func TestReindentWrite(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "block.nc"))
	require.NoError(t, err)
	path := writeFile(t, "b.nc", string(src))

	out, err := execute(t, "reindent", "--write", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, reindented, string(got))
}

func TestReplay(t *testing.T) {
	out, err := execute(t, "replay", filepath.Join("testdata", "pass.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "--- ok: pass (2 steps)\nf(x)|\n", out)
}

func TestReplayFailure(t *testing.T) {
	out, err := execute(t, "replay", filepath.Join("testdata", "pass.yaml"), filepath.Join("testdata", "fail.yaml"))
	require.ErrorIs(t, err, cli.ErrExpectationsFailed)
	assert.Equal(t, cli.ExitExpectationsFailed, cli.ExitCode(err))
	assert.Contains(t, out, "--- FAIL: fail (2 steps)")
	assert.Contains(t, out, `step 2: want "f(|", got "f(|)"`)
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader on
// different goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReplayWatchReloadsConfig(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "block.yaml")
	require.NoError(t, os.WriteFile(script, []byte("name: block\ntext: \"f() {\"\nsteps:\n  - type: \"\\n\"\n"), 0o644))
	cfg := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[editor]\ntabSize = 4\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	var out syncBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--log-level", "error", "--config", cfg, "replay", "--watch", script})
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "f() {\n\t|\n}")
	}, 3*time.Second, 10*time.Millisecond)

	// Let the watches register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(cfg, []byte("[editor]\ntabSize = 2\ninsertSpaces = true\n"), 0o644))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "f() {\n  |\n}")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("replay --watch did not stop")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
	assert.Contains(t, out, runtime.Version())

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test-version\n", out)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitSuccess},
		{fmt.Errorf("wrapped: %w", cli.ErrExpectationsFailed), cli.ExitExpectationsFailed},
		{&config.ParseError{Path: "x.toml", Message: "bad"}, cli.ExitConfigError},
		{config.ErrUnsupportedFormat, cli.ExitConfigError},
		{buffer.ErrOffsetOutOfRange, cli.ExitInvalidUsage},
		{os.ErrPermission, cli.ExitInternalError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), "%v", tt.err)
	}
}
