// Command tagsgen writes the tag constructor table for package view.
//
// Every tag name is checked against the HTML atom table so that a typo in
// the lists below fails generation instead of producing a bogus helper.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"strings"

	"golang.org/x/net/html/atom"
)

var contentTags = []string{
	"a", "b", "body", "button", "div", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"head", "header", "html", "i", "label", "li", "main", "nav", "ol",
	"option", "p", "script", "section", "select", "small", "span", "strong",
	"style", "table", "tbody", "td", "textarea", "th", "thead", "title", "tr", "ul",
}

var selfClosingTags = []string{"br", "hr", "img", "input", "link", "meta"}

func main() {
	out := flag.String("o", "tags_gen.go", "output file")
	flag.Parse()

	src, err := generate(contentTags, selfClosingTags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tagsgen: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "tagsgen: write %s: %v\n", *out, err)
		os.Exit(1)
	}
}

func generate(content, selfClosing []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by tagsgen. DO NOT EDIT.\n\npackage view\n\n")

	for _, tag := range content {
		if err := checkTag(tag); err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "// %s returns a <%s> content node.\n", funcName(tag), tag)
		fmt.Fprintf(&buf, "func %s(attrs []Attribute, children ...Renderable) ContentNode {\n", funcName(tag))
		fmt.Fprintf(&buf, "\treturn Content(%q, attrs, children...)\n}\n\n", tag)
	}

	for _, tag := range selfClosing {
		if err := checkTag(tag); err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "// %s returns a self-closing <%s/> node.\n", funcName(tag), tag)
		fmt.Fprintf(&buf, "func %s(attrs ...Attribute) DataNode {\n", funcName(tag))
		fmt.Fprintf(&buf, "\treturn SelfClosing(%q, attrs...)\n}\n\n", tag)
	}

	buf.WriteString("// Tags maps every generated tag name to whether it is self-closing.\n")
	buf.WriteString("var Tags = map[string]bool{\n")
	for _, tag := range content {
		fmt.Fprintf(&buf, "\t%q: false,\n", tag)
	}
	for _, tag := range selfClosing {
		fmt.Fprintf(&buf, "\t%q: true,\n", tag)
	}
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func checkTag(tag string) error {
	if atom.Lookup([]byte(tag)) == 0 {
		return fmt.Errorf("unknown HTML tag %q", tag)
	}
	return nil
}

func funcName(tag string) string {
	return strings.ToUpper(tag[:1]) + tag[1:]
}
