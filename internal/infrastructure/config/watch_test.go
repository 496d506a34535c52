package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConfigFile(t *testing.T) {
	assert.True(t, IsConfigFile("configs/locomotion.yaml"))
	assert.True(t, IsConfigFile("a.YML"))
	assert.True(t, IsConfigFile("stages/demo.json"))
	assert.False(t, IsConfigFile("notes.txt"))
	assert.False(t, IsConfigFile("locomotion.yaml.swp"))
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "locomotion.yaml")
	require.NoError(t, os.WriteFile(target, []byte("jump:\n  speed: 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for changed config file")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())
}

func TestWatcher_DrainErrors(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.DrainErrors())

	boom := errors.New("queue overflow")
	w.Errors <- boom
	assert.Equal(t, []error{boom}, w.DrainErrors())
	assert.Empty(t, w.DrainErrors(), "errors are consumed")

	require.NoError(t, w.Close())
	assert.Empty(t, w.DrainErrors(), "closed watcher")
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
