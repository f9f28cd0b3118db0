package view

import "strings"

// Renderable is anything that can produce its text representation.
type Renderable interface {
	Render() (string, error)
}

// Text is verbatim markup.
type Text string

// Render returns the text unchanged.
func (t Text) Render() (string, error) {
	return string(t), nil
}

// Group is an ordered sequence of renderables. It renders as the
// concatenation of its elements with no separator.
type Group []Renderable

// Render renders every element in order.
func (g Group) Render() (string, error) {
	return Render(g)
}

// RenderFunc adapts a function into a Renderable.
type RenderFunc func() (string, error)

// Render calls f.
func (f RenderFunc) Render() (string, error) {
	return f()
}

// Comment renders an HTML comment.
func Comment(text string) Text {
	return Text("<!-- " + text + " -->")
}

// Render renders r into a single string. A nil Renderable renders as the
// empty string. Failures of nested renderables are returned unchanged and no
// partial output is produced.
func Render(r Renderable) (string, error) {
	var sb strings.Builder
	if err := write(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// write walks the closed set of tree kinds directly and falls back to
// Render for lazy kinds (Conditional, Repeat, RenderFunc) and foreign types.
func write(sb *strings.Builder, r Renderable) error {
	switch n := r.(type) {
	case nil:
		return nil
	case Text:
		sb.WriteString(string(n))
	case Attribute:
		n.writeTo(sb)
	case ContentNode:
		writeOpen(sb, n.Tag, n.Attributes)
		sb.WriteByte('>')
		if err := write(sb, n.Children); err != nil {
			return err
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	case DataNode:
		writeOpen(sb, n.Tag, n.Attributes)
		sb.WriteString("/>")
	case Group:
		for _, child := range n {
			if err := write(sb, child); err != nil {
				return err
			}
		}
	case Captured:
		sb.WriteString(n.rendered)
	default:
		out, err := r.Render()
		if err != nil {
			return err
		}
		sb.WriteString(out)
	}
	return nil
}

func writeOpen(sb *strings.Builder, tag string, attrs []Attribute) {
	sb.WriteByte('<')
	sb.WriteString(tag)
	for _, attr := range attrs {
		sb.WriteByte(' ')
		attr.writeTo(sb)
	}
}
