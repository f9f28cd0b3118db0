// Package leaf binds markup trees to the variables of a Leaf template.
//
// A View builds a tree from the constructors in package view. Views that
// read variables bind them through a Binder for their own type, which turns
// typed field selectors into template placeholders and checks, while the
// tree is being built, that embedded templates and loops agree on the names
// of the values they exchange:
//
//	type PostTemplate struct {
//		Post Post `json:"post"`
//	}
//
//	func (PostTemplate) ContentField() fieldpath.Ref {
//		return fieldpath.Of(func(t *PostTemplate) Post { return t.Post })
//	}
//
//	func (PostTemplate) Build() (view.Renderable, error) {
//		b := leaf.For[PostTemplate]()
//		return b.Finish(view.Div(nil,
//			view.H2(nil, b.Keep(leaf.Variable(b, func(t *PostTemplate) string { return t.Post.Title }))),
//		))
//	}
//
// Rendering PostTemplate yields <div><h2>#(post.title)</h2></div>.
// A mismatch, such as a loop over "entries" embedding a template whose
// content is "post", is reported as a KeyMismatchError by Build instead of
// surfacing when the template engine runs.
package leaf
