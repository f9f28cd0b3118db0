package fieldpath

import (
	"fmt"
	"reflect"
	"strings"
)

// Path is an ordered list of field names, outermost first.
type Path []string

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Depth is the nesting depth of the field: 0 for a top-level field.
func (p Path) Depth() int {
	return len(p) - 1
}

// Ref is a field reference with its static types erased.
type Ref interface {
	// Owner is the struct type the field belongs to.
	Owner() reflect.Type
	// Type is the type of the referenced field.
	Type() reflect.Type

	selectFrom(owner reflect.Value) (reflect.Value, error)
}

// Field references a field of T holding a V.
type Field[T, V any] func(*T) V

// Of converts a selector into a Field.
func Of[T, V any](selector func(*T) V) Field[T, V] {
	return Field[T, V](selector)
}

// Owner returns the type of T.
func (f Field[T, V]) Owner() reflect.Type {
	return reflect.TypeFor[T]()
}

// Type returns the type of V.
func (f Field[T, V]) Type() reflect.Type {
	return reflect.TypeFor[V]()
}

// selectFrom runs the selector on owner, which must be a *T. A panicking
// selector, for example one dereferencing a nil pointer, yields an error.
func (f Field[T, V]) selectFrom(owner reflect.Value) (out reflect.Value, err error) {
	if f == nil {
		return reflect.Value{}, fmt.Errorf("nil selector")
	}

	ptr, ok := owner.Interface().(*T)
	if !ok {
		return reflect.Value{}, fmt.Errorf("selector expects %s, got %s", reflect.TypeFor[*T](), owner.Type())
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector panicked: %v", r)
		}
	}()

	v := f(ptr)
	return reflect.ValueOf(&v).Elem(), nil
}
