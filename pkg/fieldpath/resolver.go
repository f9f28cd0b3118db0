package fieldpath

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// DefaultTagKey is the struct tag consulted for field names.
const DefaultTagKey = "json"

// Resolver maps field references to paths. It caches the field layout of
// every owner type it sees and is safe for concurrent use.
type Resolver struct {
	tagKey string
	naming Naming

	mutex  sync.RWMutex
	layout map[reflect.Type][]candidate
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTagKey selects the struct tag that names fields.
func WithTagKey(key string) Option {
	return func(r *Resolver) {
		if key != "" {
			r.tagKey = key
		}
	}
}

// WithNaming sets how untagged fields are named.
func WithNaming(naming Naming) Option {
	return func(r *Resolver) {
		if naming != nil {
			r.naming = naming
		}
	}
}

// New creates a Resolver. Without options it names fields the way
// encoding/json does.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		tagKey: DefaultTagKey,
		naming: CodecName,
		layout: make(map[reflect.Type][]candidate),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver atomic.Pointer[Resolver]

func init() {
	defaultResolver.Store(New())
}

// Default returns the shared Resolver. Binders and registries created
// without an explicit resolver use it.
func Default() *Resolver {
	return defaultResolver.Load()
}

// SetDefault replaces the shared Resolver. nil restores one with default
// options. Call it before views are built; paths already cached in
// registries are not recomputed.
func SetDefault(r *Resolver) {
	if r == nil {
		r = New()
	}
	defaultResolver.Store(r)
}

// candidate is one codec-visible field of an owner type.
type candidate struct {
	path  Path
	index []int
	typ   reflect.Type
}

// Resolve returns the path of the field ref reads.
func (r *Resolver) Resolve(ref Ref) (Path, error) {
	if ref == nil {
		return nil, unresolved(nil, "nil field reference")
	}

	owner := ref.Owner()
	if owner.Kind() != reflect.Struct {
		return nil, unresolved(ref, "owner is a %s, not a struct", owner.Kind())
	}

	baseline := r.build(owner)
	got, err := ref.selectFrom(baseline)
	if err != nil {
		return nil, unresolved(ref, "%v", err)
	}

	for _, c := range r.candidates(owner) {
		if c.typ != ref.Type() {
			continue
		}

		left, ancestors, ok := lookup(baseline, c.index)
		if !ok || !equal(got, left) {
			continue
		}
		// The right example is cut off at the same recursive types as the
		// baseline was while filling this field.
		right, ok := exampleWithin(c.typ, rightSide, ancestors)
		if !ok || equal(left, right) {
			continue
		}

		switched, ok := r.withField(owner, c.index, right)
		if !ok {
			continue
		}
		out, err := ref.selectFrom(switched)
		if err != nil {
			continue
		}
		if equal(out, right) {
			return append(Path(nil), c.path...), nil
		}
	}

	return nil, unresolved(ref, "no field of type %s responds to the selector", ref.Type())
}

// MustResolve is like Resolve but panics on failure.
func (r *Resolver) MustResolve(ref Ref) Path {
	p, err := r.Resolve(ref)
	if err != nil {
		panic(err)
	}
	return p
}

// Fields lists the paths of all codec-visible fields of t at the given
// depth, in declaration order. Pointer types are dereferenced. A t that is
// not a struct yields an UnresolvedFieldError.
func (r *Resolver) Fields(t reflect.Type, depth int) ([]Path, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &UnresolvedFieldError{Owner: t, Reason: fmt.Sprintf("%v is not a struct", t)}
	}

	var paths []Path
	for _, c := range r.candidates(t) {
		if c.path.Depth() == depth {
			paths = append(paths, append(Path(nil), c.path...))
		}
	}
	return paths, nil
}

// PathOf resolves a selector on T with r.
func PathOf[T, V any](r *Resolver, selector func(*T) V) (Path, error) {
	if r == nil {
		r = Default()
	}
	return r.Resolve(Of(selector))
}

// FieldsOf lists the fields of T at depth with r.
func FieldsOf[T any](r *Resolver, depth int) ([]Path, error) {
	if r == nil {
		r = Default()
	}
	return r.Fields(reflect.TypeFor[T](), depth)
}

func (r *Resolver) candidates(t reflect.Type) []candidate {
	r.mutex.RLock()
	cached, ok := r.layout[t]
	r.mutex.RUnlock()
	if ok {
		return cached
	}

	var out []candidate
	r.walk(t, nil, nil, map[reflect.Type]bool{}, &out)

	r.mutex.Lock()
	r.layout[t] = out
	r.mutex.Unlock()
	return out
}

// walk enumerates the fields of struct type t in pre-order, descending
// into nested structs.
func (r *Resolver) walk(t reflect.Type, prefix Path, index []int, visiting map[reflect.Type]bool, out *[]candidate) {
	visiting[t] = true
	defer delete(visiting, t)

	for _, f := range r.visibleFields(t) {
		idx := append(append([]int(nil), index...), f.index...)
		path := append(append(Path(nil), prefix...), f.name)
		*out = append(*out, candidate{path: path, index: idx, typ: f.typ})

		nested := f.typ
		if nested.Kind() == reflect.Pointer {
			nested = nested.Elem()
		}
		if nested.Kind() == reflect.Struct && !isLeaf(nested) && !visiting[nested] {
			r.walk(nested, path, idx, visiting, out)
		}
	}
}

// field is a codec-visible field of one struct level. Fields promoted from
// embedded structs carry the index through the embedding.
type field struct {
	name   string
	index  []int
	typ    reflect.Type
	tagged bool
}

// visibleFields lists the fields the codec reads from t, in declaration
// order. Of several fields sharing a name only the dominant one is kept:
// the shallowest, then the tagged one. Names without a single dominant
// field are dropped, as encoding/json drops them.
func (r *Resolver) visibleFields(t reflect.Type) []field {
	var all []field
	r.collect(t, nil, map[reflect.Type]bool{}, &all)

	byName := make(map[string][]int, len(all))
	for i, f := range all {
		byName[f.name] = append(byName[f.name], i)
	}

	out := make([]field, 0, len(all))
	for i, f := range all {
		if dominant(all, byName[f.name]) == i {
			out = append(out, f)
		}
	}
	return out
}

// collect appends the fields of t, flattening untagged embedded structs.
func (r *Resolver) collect(t reflect.Type, index []int, visiting map[reflect.Type]bool, out *[]field) {
	visiting[t] = true
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, tagged, visible := fieldName(f, r.tagKey, r.naming)
		if !visible {
			continue
		}

		idx := append(append([]int(nil), index...), i)

		if f.Anonymous && !tagged {
			et := f.Type
			if et.Kind() == reflect.Pointer && f.IsExported() {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && !isLeaf(et) {
				if !visiting[et] {
					r.collect(et, idx, visiting, out)
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		*out = append(*out, field{name: name, index: idx, typ: f.Type, tagged: tagged})
	}
}

// dominant returns the position in all of the field that wins among the
// fields at positions, or -1 when the name is ambiguous.
func dominant(all []field, positions []int) int {
	best, ambiguous := -1, false
	for _, p := range positions {
		if best < 0 {
			best = p
			continue
		}
		f, b := all[p], all[best]
		switch {
		case len(f.index) < len(b.index),
			len(f.index) == len(b.index) && f.tagged && !b.tagged:
			best, ambiguous = p, false
		case len(f.index) == len(b.index) && f.tagged == b.tagged:
			ambiguous = true
		}
	}
	if ambiguous {
		return -1
	}
	return best
}

// isLeaf reports whether t is resolved as a whole rather than by its fields.
func isLeaf(t reflect.Type) bool {
	return t == timeType ||
		t.Implements(reflectorType) ||
		reflect.PointerTo(t).Implements(reflectorType)
}

// build returns a *owner filled with left examples.
func (r *Resolver) build(owner reflect.Type) reflect.Value {
	root := reflect.New(owner)
	newExampler(leftSide).fill(root.Elem())
	return root
}

// withField returns a fresh left example of owner with the field at index
// set to value. ok is false when the field cannot be reached or set.
func (r *Resolver) withField(owner reflect.Type, index []int, value reflect.Value) (reflect.Value, bool) {
	root := r.build(owner)
	target, _, ok := lookup(root, index)
	if !ok || !target.CanSet() {
		return root, false
	}
	target.Set(value)
	return root, true
}

// lookup follows index from root and returns the field it names along with
// the struct types passed on the way. ok is false when a nil pointer is in
// the way.
func lookup(root reflect.Value, index []int) (v reflect.Value, ancestors []reflect.Type, ok bool) {
	v = root
	for _, i := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, nil, false
			}
			v = v.Elem()
		}
		ancestors = append(ancestors, v.Type())
		v = v.Field(i)
	}
	return v, ancestors, true
}
