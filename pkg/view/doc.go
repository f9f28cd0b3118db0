// Package view models markup as a tree of typed nodes that renders to text.
//
// A tree is plain data: content nodes wrap children, data nodes are
// self-closing, attributes render as name='value', and conditional or
// repeated sections expand when the tree is rendered. Rendering is a pure
// traversal, so the same tree always produces the same bytes.
//
// # Building a tree
//
//	page := view.Div([]view.Attribute{view.ID("main"), view.Class("card", "dark")},
//		view.H1(nil, view.Text("Title")),
//		view.P(nil, view.Text("Text")),
//	)
//	out, err := view.Render(page)
//	// <div id='main' class='card dark'><h1>Title</h1><p>Text</p></div>
//
// Text is inserted verbatim. Nothing is escaped, which is what allows the
// leaf package to splice template placeholders such as #(content.title)
// into the tree.
//
// # Slots
//
// Captured freezes a rendered subtree into an immutable value. It is used as
// the type of slot fields on host structs so that field paths to those slots
// can be resolved by package fieldpath.
//
// The tag constructors in tags_gen.go are generated; run go generate after
// editing the tag lists in internal/tagsgen.
package view

//go:generate go run ../../internal/tagsgen -o tags_gen.go
