package view

// ContentNode is a tag wrapping nested content.
type ContentNode struct {
	Tag        string
	Attributes []Attribute
	Children   Renderable
}

// DataNode is a self-closing tag. It carries attributes only.
type DataNode struct {
	Tag        string
	Attributes []Attribute
}

// Content returns a content node. A single child is stored as is; several
// children are stored as a Group. It panics if tag is empty.
func Content(tag string, attrs []Attribute, children ...Renderable) ContentNode {
	mustTag(tag)

	var body Renderable
	switch len(children) {
	case 0:
	case 1:
		body = children[0]
	default:
		body = Group(children)
	}

	return ContentNode{
		Tag:        tag,
		Attributes: attrs,
		Children:   body,
	}
}

// SelfClosing returns a data node. It panics if tag is empty.
func SelfClosing(tag string, attrs ...Attribute) DataNode {
	mustTag(tag)
	return DataNode{Tag: tag, Attributes: attrs}
}

// Render renders the node as <tag attrs>children</tag>.
func (n ContentNode) Render() (string, error) {
	return Render(n)
}

// Render renders the node as <tag attrs/>.
func (n DataNode) Render() (string, error) {
	return Render(n)
}

func mustTag(tag string) {
	if tag == "" {
		panic("view: tag name is required")
	}
}

// Stylesheet links a CSS file.
func Stylesheet(href string, attrs ...Attribute) DataNode {
	return SelfClosing("link", append([]Attribute{Rel("stylesheet"), Href(href)}, attrs...)...)
}

// LinkTo returns a link tag pointing at href.
func LinkTo(href string, attrs ...Attribute) DataNode {
	return SelfClosing("link", append([]Attribute{Href(href)}, attrs...)...)
}

// MetaTag returns a named meta tag.
func MetaTag(name, content string, attrs ...Attribute) DataNode {
	return SelfClosing("meta", append([]Attribute{Name(name), ContentAttr(content)}, attrs...)...)
}

// Image returns an img tag with a source.
func Image(src string, attrs ...Attribute) DataNode {
	return SelfClosing("img", append([]Attribute{Src(src)}, attrs...)...)
}

// Anchor returns an a tag with an href placed before the other attributes.
func Anchor(href string, attrs []Attribute, children ...Renderable) ContentNode {
	return Content("a", append([]Attribute{Href(href)}, attrs...), children...)
}
