package errors

import (
	"errors"
	"io/fs"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/leaf"
)

// Classify maps err onto a LeafError. LeafErrors are returned as they are;
// binding and file system failures from the core get their codes here.
// Classify returns nil for a nil error.
func Classify(err error) *LeafError {
	if err == nil {
		return nil
	}

	var le *LeafError
	if errors.As(err, &le) && le.Code != ErrCodeRenderFailed {
		return le
	}

	var mismatch *leaf.KeyMismatchError
	if errors.As(err, &mismatch) {
		return NewBindingError(ErrCodeKeyMismatch, "binding names do not match", err).
			WithView(viewOf(le, mismatch.View)).
			WithContext("op", mismatch.Op).
			WithContext("want", mismatch.Want).
			WithContext("got", mismatch.Got)
	}

	var unresolved *fieldpath.UnresolvedFieldError
	if errors.As(err, &unresolved) {
		out := NewBindingError(ErrCodeUnresolvedField, "field reference does not name a field", err).
			WithView(viewOf(le, ""))
		if unresolved.Owner != nil {
			out.WithContext("owner", unresolved.Owner.String())
		}
		return out
	}

	if le != nil {
		return le
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return NewIOError(ErrCodeWriteFailed, "file operation failed", err).WithFile(pathErr.Path)
	}

	return NewInternalError(ErrCodeInternalError, "unexpected failure", err)
}

func viewOf(le *LeafError, fallback string) string {
	if le != nil && le.View != "" {
		return le.View
	}
	return fallback
}
