package leaf

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/view"
)

// Variable emits #(path) for the field sel reads.
func Variable[T, V any](b *Binder[T], sel func(*T) V) (view.Text, error) {
	path, err := b.resolver.Resolve(fieldpath.Of(sel))
	if err != nil {
		return "", fmt.Errorf("leaf: variable on %s: %w", TypeName[T](), err)
	}
	return view.Text("#(" + path.String() + ")"), nil
}

// EmbedStatic emits #embed("Name") for a view without variables.
func EmbedStatic[V StaticView]() view.Text {
	return embed(TypeName[V]())
}

// EmbedTemplate emits #embed("Name") for template V after checking that the
// host T has a field under the same path as V's content field, so the
// embedded template finds its content.
func EmbedTemplate[V Template, T any](b *Binder[T]) (view.Text, error) {
	name := TypeName[V]()

	content, _, err := contentPath[V](b.resolver)
	if err != nil {
		return "", err
	}

	fields, err := b.resolver.Fields(reflect.TypeFor[T](), content.Depth())
	if err != nil {
		return "", fmt.Errorf("leaf: embed %s in %s: %w", name, TypeName[T](), err)
	}

	want := content.String()
	if !slices.ContainsFunc(fields, func(p fieldpath.Path) bool { return p.String() == want }) {
		got := make([]string, len(fields))
		for i, p := range fields {
			got[i] = p.String()
		}
		return "", &KeyMismatchError{
			Op:   "embed",
			View: name,
			Want: want,
			Got:  fmt.Sprintf("%v", got),
		}
	}

	return embed(name), nil
}

// ForEach emits a loop embedding template V once per element of the
// collection sel reads. The plural rule must map the collection's path onto
// V's content path, and the elements must have the content field's type.
func ForEach[V Template, T, E any](b *Binder[T], sel func(*T) []E) (view.Text, error) {
	name := TypeName[V]()

	plural, err := b.resolver.Resolve(fieldpath.Of(sel))
	if err != nil {
		return "", fmt.Errorf("leaf: foreach %s on %s: %w", name, TypeName[T](), err)
	}

	content, contentType, err := contentPath[V](b.resolver)
	if err != nil {
		return "", err
	}

	singular := b.plural(plural.String())
	if singular == "" || singular != content.String() {
		return "", &KeyMismatchError{
			Op:   "foreach",
			View: name,
			Want: content.String(),
			Got:  singular,
		}
	}

	if elem := reflect.TypeFor[E](); elem != contentType {
		return "", &KeyMismatchError{
			Op:   "foreach",
			View: name,
			Want: contentType.String(),
			Got:  elem.String(),
		}
	}

	return view.Text("#for(" + singular + " in " + plural.String() + ") {" + string(embed(name)) + "}"), nil
}

// Set renders the slot content now and emits #set("path") {content} for the
// slot field sel reads on U, the template the slot belongs to.
func Set[U any, S view.Renderable, T any](b *Binder[T], sel func(*U) S, produce func() view.Renderable) (view.Text, error) {
	path, err := b.resolver.Resolve(fieldpath.Of(sel))
	if err != nil {
		return "", fmt.Errorf("leaf: set on %s: %w", TypeName[U](), err)
	}

	var content string
	if produce != nil {
		content, err = view.Render(produce())
		if err != nil {
			return "", fmt.Errorf("leaf: set %s: %w", path, err)
		}
	}

	return view.Text(`#set("` + path.String() + `") {` + content + "}"), nil
}

// Get emits #get(path) for the slot field sel reads.
func Get[T any, S view.Renderable](b *Binder[T], sel func(*T) S) (view.Text, error) {
	path, err := b.resolver.Resolve(fieldpath.Of(sel))
	if err != nil {
		return "", fmt.Errorf("leaf: get on %s: %w", TypeName[T](), err)
	}
	return view.Text("#get(" + path.String() + ")"), nil
}

func embed(name string) view.Text {
	return view.Text(`#embed("` + name + `")`)
}

// contentPath resolves the content field of template V.
func contentPath[V Template](r *fieldpath.Resolver) (fieldpath.Path, reflect.Type, error) {
	name := TypeName[V]()

	ref := zero[V]().ContentField()
	if ref == nil {
		return nil, nil, fmt.Errorf("leaf: template %s: %w", name, &fieldpath.UnresolvedFieldError{
			Reason: "nil content field",
		})
	}

	owner := reflect.TypeFor[V]()
	for owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}
	if ref.Owner() != owner {
		return nil, nil, &KeyMismatchError{
			Op:   "content",
			View: name,
			Want: owner.String(),
			Got:  ref.Owner().String(),
		}
	}

	path, err := r.Resolve(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("leaf: content of %s: %w", name, err)
	}
	return path, ref.Type(), nil
}
