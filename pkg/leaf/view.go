package leaf

import (
	"reflect"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/view"
)

// View is a buildable Leaf file. Build is called on the zero value of the
// implementing type.
type View interface {
	Build() (view.Renderable, error)
}

// StaticView is a View that reads no variables. Embed Static to declare one.
type StaticView interface {
	View
	staticView()
}

// Static marks a view as static when embedded.
type Static struct{}

func (Static) staticView() {}

// Template is a View that presents a content value. ContentField names the
// field of the template the content is bound to, and is called on the zero
// value of the implementing type.
type Template interface {
	View
	ContentField() fieldpath.Ref
}

// Kind classifies a view for listings.
type Kind string

const (
	KindStatic   Kind = "static"
	KindTemplate Kind = "template"
	KindView     Kind = "view"
)

// KindOf reports the kind of v.
func KindOf(v View) Kind {
	switch v.(type) {
	case StaticView:
		return KindStatic
	case Template:
		return KindTemplate
	default:
		return KindView
	}
}

// TypeName is the name V is embedded under, its Go type name without any
// pointer.
func TypeName[V any]() string {
	return typeName(reflect.TypeFor[V]())
}

// NameOf is TypeName for a value.
func NameOf(v any) string {
	if v == nil {
		return ""
	}
	return typeName(reflect.TypeOf(v))
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Render builds v and renders the resulting tree.
func Render(v View) (string, error) {
	if v == nil {
		return "", nil
	}
	tree, err := v.Build()
	if err != nil {
		return "", err
	}
	return view.Render(tree)
}

// RenderOf renders the zero value of V.
func RenderOf[V View]() (string, error) {
	return Render(zero[V]())
}

// Each builds one view per element and concatenates their renders, in the
// order of elems.
func Each[E any, V View](elems []E, newView func(E) V) view.Renderable {
	return view.ForEach(elems, func(_ int, elem E) view.Renderable {
		return view.RenderFunc(func() (string, error) {
			return Render(newView(elem))
		})
	})
}

// zero returns the zero value of V, or a pointer to a zero element when V
// is a pointer type, so methods can be called on it.
func zero[V any]() V {
	var v V
	if t := reflect.TypeFor[V](); t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem()).Interface().(V)
	}
	return v
}
