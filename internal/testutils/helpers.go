// Package testutils holds helpers shared by the tests of the command line
// and the emitter.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ChdirTemp changes into a new temporary directory for the rest of the
// test and returns it. Tests using it must not run in parallel.
func ChdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// AssertFilePermissions checks the permission bits of path.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode().Perm()
	require.Equal(t, expectedMode, actualMode,
		"File %s has incorrect permissions: got %o, want %o", path, actualMode, expectedMode)
}

// WaitForContent polls path until its content satisfies cond. Missing or
// unreadable files count as not satisfying it.
func WaitForContent(t *testing.T, path string, timeout time.Duration, cond func(content string) bool) string {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		content, err := os.ReadFile(path)
		if err == nil && cond(string(content)) {
			return string(content)
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s did not reach the expected content within %v", path, timeout)
	return ""
}

// Exists is a WaitForContent condition met by any content.
func Exists(string) bool { return true }
