package view

import (
	"strconv"
	"strings"
)

// Attribute is a name/value pair on a tag. Duplicate names on one node are
// allowed and are all emitted in order.
type Attribute struct {
	Name  string
	Value string
}

// Attr returns an attribute.
func Attr(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

// Render renders the attribute as name='value'.
func (a Attribute) Render() (string, error) {
	var sb strings.Builder
	a.writeTo(&sb)
	return sb.String(), nil
}

func (a Attribute) writeTo(sb *strings.Builder) {
	sb.WriteString(a.Name)
	sb.WriteString("='")
	sb.WriteString(a.Value)
	sb.WriteByte('\'')
}

// Class joins values with a single space.
func Class(values ...string) Attribute {
	return Attr("class", strings.Join(values, " "))
}

// ID returns the id attribute.
func ID(value string) Attribute { return Attr("id", value) }

// Lang returns the lang attribute.
func Lang(value string) Attribute { return Attr("lang", value) }

// Alt returns the alt attribute.
func Alt(value string) Attribute { return Attr("alt", value) }

// Name returns the name attribute.
func Name(value string) Attribute { return Attr("name", value) }

// ContentAttr returns the content attribute.
func ContentAttr(value string) Attribute { return Attr("content", value) }

// Rel returns the rel attribute.
func Rel(value string) Attribute { return Attr("rel", value) }

// Href returns the href attribute.
func Href(value string) Attribute { return Attr("href", value) }

// Src returns the src attribute.
func Src(value string) Attribute { return Attr("src", value) }

// Type returns the type attribute.
func Type(value string) Attribute { return Attr("type", value) }

// Charset returns the charset attribute.
func Charset(value string) Attribute { return Attr("charset", value) }

// DataToggle returns the data-toggle attribute.
func DataToggle(value string) Attribute { return Attr("data-toggle", value) }

// DataTarget returns the data-target attribute.
func DataTarget(value string) Attribute { return Attr("data-target", value) }

// OnClick returns the onclick attribute.
func OnClick(function string) Attribute { return Attr("onclick", function) }

// For returns the for attribute.
func For(value string) Attribute { return Attr("for", value) }

// Placeholder returns the placeholder attribute.
func Placeholder(text string) Attribute { return Attr("placeholder", text) }

// Action returns the action attribute.
func Action(value string) Attribute { return Attr("action", value) }

// Method returns the method attribute.
func Method(value string) Attribute { return Attr("method", value) }

// Width returns the width attribute in pixels.
func Width(width int) Attribute { return Attr("width", strconv.Itoa(width)) }

// Height returns the height attribute in pixels.
func Height(height int) Attribute { return Attr("height", strconv.Itoa(height)) }

// Checked renders checked=''. Boolean attributes keep the quoted form so
// every attribute has the same shape.
func Checked() Attribute { return Attr("checked", "") }

// Required renders required=''.
func Required() Attribute { return Attr("required", "") }
