package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithOptions(t *testing.T) {
	w, err := New(WithDebounce(10 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 10*time.Millisecond, w.debounce)
}

func TestAdd(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(filepath.Join(dir, "a.toml")))
	require.NoError(t, w.Add(filepath.Join(dir, "b.toml")))
	assert.Len(t, w.Files(), 2)
	assert.Len(t, w.dirs, 1)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Add(filepath.Join(dir, "c.toml")), ErrWatcherClosed)
}

func TestRunReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o600))

	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(path))

	var mu sync.Mutex
	var got []string
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(p string) {
			mu.Lock()
			got = append(got, p)
			mu.Unlock()
		})
	}()

	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0o600))
	}

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	for _, p := range got {
		assert.Equal(t, abs, p)
	}
	mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDeliverGivesUpAfterRunReturns(t *testing.T) {
	fired := make(chan string)
	done := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		deliver(context.Background(), done, fired, "a.toml")
		close(returned)
	}()

	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("deliver blocked after the loop finished")
	}
}

func TestRunReturnsOnClose(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(string) {})
	}()
	require.NoError(t, w.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
}
