package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func TestWatcher_DetectsDictionaryChange(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(dict, []byte("NY|New York\n"), 0644))

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{dict}, func(path string) { changed <- path }, nil))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(dict, []byte("NY|New York|NYC\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for dictionary change")
	assert.Equal(t, dict, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(dict, []byte("x\n"), 0644))

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{dict}, func(path string) { changed <- path }, nil))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "unrelated file should not trigger a callback")
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(dict, []byte("a\n"), 0644))

	w, err := NewWatcher(200 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	require.NoError(t, w.Watch([]string{dict}, func(string) { calls.Add(1) }, nil))

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dict, []byte("a\nb\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst of writes should produce one callback")
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{"/nonexistent/dir/dict.txt"}, func(string) {}, nil)
	assert.Error(t, err)
}
