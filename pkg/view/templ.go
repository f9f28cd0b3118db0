package view

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Component exposes r as a templ component so generated markup can be
// placed inside templ pages.
func Component(r Renderable) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := Render(r)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// FromComponent renders a templ component in place. The component is
// rendered with a background context every time the tree is rendered.
func FromComponent(c templ.Component) Renderable {
	return RenderFunc(func() (string, error) {
		if c == nil {
			return "", nil
		}
		var buf bytes.Buffer
		if err := c.Render(context.Background(), &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	})
}
