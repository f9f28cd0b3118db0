package fieldpath

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnresolvedField is matched by every UnresolvedFieldError.
var ErrUnresolvedField = errors.New("unresolved field")

// UnresolvedFieldError reports a field reference that could not be mapped
// to a field of its owner. Resolution is deterministic, so retrying does not
// help.
type UnresolvedFieldError struct {
	Owner  reflect.Type
	Type   reflect.Type
	Reason string
}

func (e *UnresolvedFieldError) Error() string {
	owner, typ := "<nil>", "<nil>"
	if e.Owner != nil {
		owner = e.Owner.String()
	}
	if e.Type != nil {
		typ = e.Type.String()
	}
	return fmt.Sprintf("fieldpath: cannot resolve %s field of %s: %s", typ, owner, e.Reason)
}

// Is reports whether target is ErrUnresolvedField.
func (e *UnresolvedFieldError) Is(target error) bool {
	return target == ErrUnresolvedField
}

func unresolved(ref Ref, reason string, args ...any) *UnresolvedFieldError {
	err := &UnresolvedFieldError{Reason: fmt.Sprintf(reason, args...)}
	if ref != nil {
		err.Owner = ref.Owner()
		err.Type = ref.Type()
	}
	return err
}
