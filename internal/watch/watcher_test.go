package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startWatcher(t *testing.T, roots []string, onChange func()) context.CancelFunc {
	t.Helper()
	w, err := New(roots, 50*time.Millisecond, onChange, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Allow the watcher to register its directories.
	time.Sleep(200 * time.Millisecond)
	return cancel
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, []string{dir}, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte{byte('a' + i)}, 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, []string{dir}, func() { calls.Add(1) })

	sub := filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)

	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "tomato.md"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > before }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, []string{dir}, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swap"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatcherSkipsMissingRoots(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, []string{filepath.Join(dir, "missing"), dir}, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestHidden(t *testing.T) {
	assert.True(t, hidden("/garden/.git"))
	assert.True(t, hidden(".obsidian"))
	assert.False(t, hidden("/garden/notes/tomato.md"))
}
