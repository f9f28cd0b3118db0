package leaf

import (
	"reflect"
)

// ContentContext returns the render context template V expects: content
// stored under V's content path, one nested map per path segment. It fails
// with a KeyMismatchError when content does not have the content field's
// type.
func ContentContext[V Template](content any, opts ...Option) (map[string]any, error) {
	o := newOptions(opts)

	path, typ, err := contentPath[V](o.resolver)
	if err != nil {
		return nil, err
	}

	got := "<nil>"
	if content != nil {
		got = reflect.TypeOf(content).String()
	}
	if content == nil || reflect.TypeOf(content) != typ {
		return nil, &KeyMismatchError{
			Op:   "context",
			View: TypeName[V](),
			Want: typ.String(),
			Got:  got,
		}
	}

	ctx := make(map[string]any, 1)
	level := ctx
	for _, segment := range path[:len(path)-1] {
		next := make(map[string]any, 1)
		level[segment] = next
		level = next
	}
	level[path[len(path)-1]] = content
	return ctx, nil
}
