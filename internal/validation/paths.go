// Package validation checks the paths and names that end up on disk:
// the output directory, the file extension and the view file names.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// dangerousChars are shell metacharacters rejected in configured paths.
var dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}

// ValidatePath validates a configured directory. It must be relative and
// stay inside the working directory.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("path should be relative: %s", path)
	}
	for _, part := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if part == ".." {
			return fmt.Errorf("path contains traversal: %s", path)
		}
	}

	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateExtension validates a file extension such as ".leaf".
func ValidateExtension(ext string) error {
	switch {
	case !strings.HasPrefix(ext, "."):
		return fmt.Errorf("extension must start with a dot")
	case len(ext) == 1:
		return fmt.Errorf("extension must not be empty")
	case strings.ContainsAny(ext, `/\`):
		return fmt.Errorf("extension must not contain path separators")
	}
	return nil
}

// ValidateFileName validates a single path element written inside a
// directory.
func ValidateFileName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return fmt.Errorf("invalid file name %q", name)
	case filepath.IsAbs(name) || strings.ContainsAny(name, `/\`):
		return fmt.Errorf("file name %q must not contain path separators", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("file name %q contains a NUL byte", name)
	}
	return nil
}
