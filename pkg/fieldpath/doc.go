// Package fieldpath turns typed field references into the dotted paths a
// template engine sees.
//
// A field reference is a selector function over the owning struct:
//
//	title := fieldpath.Of(func(p *Page) string { return p.Content.Title })
//	path, err := fieldpath.Default().Resolve(title) // "content.title"
//
// The resolver never inspects the selector's code. It builds example values
// of the owner in which every field holds a "left" example, switches a
// single field to its "right" example, and watches which switch changes the
// selector's result. The first field (outer before inner, in declaration
// order) whose switch is observed is the one the selector reads.
//
// Field names follow the codec view of the struct: the json tag name when
// present, otherwise the Go field name; fields tagged "-" and unexported
// fields are invisible, and untagged embedded structs are flattened.
//
// Types that cannot produce two distinguishable examples by themselves
// implement Reflector.
package fieldpath
