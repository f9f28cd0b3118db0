package leaf

import (
	"errors"
	"fmt"
)

// ErrKeyMismatch is matched by every KeyMismatchError.
var ErrKeyMismatch = errors.New("key mismatch")

// KeyMismatchError reports two independently resolved names that a binding
// needs to agree on but do not.
type KeyMismatchError struct {
	// Op is the binding that failed: embed, foreach or context.
	Op string
	// View is the name of the embedded view.
	View string
	Want string
	Got  string
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("leaf: %s %s: key mismatch: want %q, got %q", e.Op, e.View, e.Want, e.Got)
}

// Is reports whether target is ErrKeyMismatch.
func (e *KeyMismatchError) Is(target error) bool {
	return target == ErrKeyMismatch
}
