package fieldpath

import (
	"reflect"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Reflector is implemented by types that supply their own pair of
// distinguishable example values. Both values must have the implementing
// type. A Reflector is treated as a leaf: its fields are never enumerated.
type Reflector interface {
	ReflectExamples() (left, right any)
}

type side int

const (
	leftSide side = iota
	rightSide
)

var (
	reflectorType = reflect.TypeFor[Reflector]()
	timeType      = reflect.TypeFor[time.Time]()
)

// exampler fills values with left or right examples. It tracks the struct
// types currently being filled so recursive types terminate.
type exampler struct {
	side     side
	visiting map[reflect.Type]bool
}

func newExampler(s side) *exampler {
	return &exampler{side: s, visiting: make(map[reflect.Type]bool)}
}

// example returns a fresh value of t and whether left and right examples of
// t differ.
func example(t reflect.Type, s side) (reflect.Value, bool) {
	return exampleWithin(t, s, nil)
}

// exampleWithin is like example but treats the struct types in ancestors as
// already being filled, so recursion stops where it would inside them.
func exampleWithin(t reflect.Type, s side, ancestors []reflect.Type) (reflect.Value, bool) {
	e := newExampler(s)
	for _, a := range ancestors {
		e.visiting[a] = true
	}
	v := reflect.New(t).Elem()
	ok := e.fill(v)
	return v, ok
}

// fill writes the example into v, which must be settable or be an embedded
// struct reached through an unexported field. It reports whether the left
// and right examples of v's type can be told apart.
func (e *exampler) fill(v reflect.Value) bool {
	t := v.Type()

	if pair, ok := reflectorExamples(t); ok {
		val := pair[e.side]
		if !val.IsValid() || val.Type() != t || !v.CanSet() {
			return false
		}
		v.Set(val)
		return true
	}

	if t == timeType {
		if !v.CanSet() {
			return false
		}
		v.Set(reflect.ValueOf(time.Unix(int64(e.side), 0).UTC()))
		return true
	}

	if !v.CanSet() && t.Kind() != reflect.Struct {
		return false
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString([]string{"0", "1"}[e.side])
		return true
	case reflect.Bool:
		v.SetBool(e.side == rightSide)
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(e.side))
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(uint64(e.side))
		return true
	case reflect.Float32, reflect.Float64:
		v.SetFloat(float64(e.side))
		return true
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(complex(float64(e.side), 0))
		return true

	case reflect.Pointer:
		elem := t.Elem()
		if elem.Kind() == reflect.Struct && e.visiting[elem] {
			return false
		}
		p := reflect.New(elem)
		ok := e.fill(p.Elem())
		v.Set(p)
		return ok

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Struct && e.visiting[t.Elem()] {
			return false
		}
		s := reflect.MakeSlice(t, 1, 1)
		ok := e.fill(s.Index(0))
		v.Set(s)
		return ok

	case reflect.Array:
		ok := t.Len() > 0
		for i := 0; i < t.Len(); i++ {
			ok = e.fill(v.Index(i)) && ok
		}
		return ok

	case reflect.Map:
		key := reflect.New(t.Key()).Elem()
		keyOK := e.fill(key)
		val := reflect.New(t.Elem()).Elem()
		valOK := e.fill(val)
		m := reflect.MakeMapWithSize(t, 1)
		m.SetMapIndex(key, val)
		v.Set(m)
		return keyOK || valOK

	case reflect.Struct:
		if e.visiting[t] {
			return false
		}
		e.visiting[t] = true
		defer delete(e.visiting, t)

		ok := false
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			fv := v.Field(i)
			switch {
			case fv.CanSet():
				ok = e.fill(fv) || ok
			case sf.Anonymous && sf.Type.Kind() == reflect.Struct:
				ok = e.fill(fv) || ok
			}
		}
		return ok
	}

	// Interfaces, funcs, channels and unsafe pointers have no example pair.
	return false
}

// reflectorExamples calls ReflectExamples on a zero value of t, through a
// pointer when the method has a pointer receiver.
func reflectorExamples(t reflect.Type) ([2]reflect.Value, bool) {
	var r Reflector
	switch {
	case t.Kind() == reflect.Interface, t.Kind() == reflect.Pointer:
		// Pointers are filled through their element.
		return [2]reflect.Value{}, false
	case t.Implements(reflectorType):
		r = reflect.Zero(t).Interface().(Reflector)
	case reflect.PointerTo(t).Implements(reflectorType):
		r = reflect.New(t).Interface().(Reflector)
	default:
		return [2]reflect.Value{}, false
	}

	left, right := r.ReflectExamples()
	return [2]reflect.Value{reflect.ValueOf(left), reflect.ValueOf(right)}, true
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// equal compares two values structurally, including unexported fields. A
// comparison that cmp refuses counts as a mismatch.
func equal(a, b reflect.Value) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	return cmp.Equal(a.Interface(), b.Interface(), exportAll)
}
