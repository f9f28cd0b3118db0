package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChdirTemp(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	t.Run("inside", func(t *testing.T) {
		dir := ChdirTemp(t)
		wd, err := os.Getwd()
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(wd)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWriteFileAndPermissions(t *testing.T) {
	path := WriteFile(t, filepath.Join(t.TempDir(), "a", "b", "View.leaf"), "<p></p>")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p></p>", string(content))

	require.NoError(t, os.Chmod(path, 0o600))
	AssertFilePermissions(t, path, 0o600)
}

func TestWaitForContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.leaf")

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(path, []byte("ready"), 0o644)
	}()

	got := WaitForContent(t, path, 5*time.Second, func(content string) bool { return content == "ready" })
	assert.Equal(t, "ready", got)
	assert.Equal(t, "ready", WaitForContent(t, path, time.Second, Exists))
}
