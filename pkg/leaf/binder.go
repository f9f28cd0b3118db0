package leaf

import (
	"errors"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/view"
)

type options struct {
	resolver *fieldpath.Resolver
	plural   PluralRule
}

// Option configures a Binder or a context lookup.
type Option func(*options)

// WithResolver resolves fields with r instead of fieldpath.Default().
func WithResolver(r *fieldpath.Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

// WithPluralRule replaces TrimLastRune for loops.
func WithPluralRule(rule PluralRule) Option {
	return func(o *options) {
		if rule != nil {
			o.plural = rule
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		resolver: fieldpath.Default(),
		plural:   TrimLastRune,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Binder binds placeholders for host type T. It also collects the errors
// of the bindings passed through Keep, so a Build method can assemble its
// whole tree and report every failure at once. A Binder belongs to a single
// Build call and is not safe for concurrent use.
type Binder[T any] struct {
	options
	errs []error
}

// For returns a Binder for T.
func For[T any](opts ...Option) *Binder[T] {
	return &Binder[T]{options: newOptions(opts)}
}

// Resolver returns the resolver the binder uses.
func (b *Binder[T]) Resolver() *fieldpath.Resolver {
	return b.resolver
}

// Keep returns r, or records err and returns an empty placeholder.
func (b *Binder[T]) Keep(r view.Renderable, err error) view.Renderable {
	if err != nil {
		b.errs = append(b.errs, err)
		return view.Text("")
	}
	return r
}

// KeepText is Keep for placeholders used as attribute values.
func (b *Binder[T]) KeepText(t view.Text, err error) string {
	if err != nil {
		b.errs = append(b.errs, err)
		return ""
	}
	return string(t)
}

// Err joins the recorded errors.
func (b *Binder[T]) Err() error {
	return errors.Join(b.errs...)
}

// Finish returns tree if no binding failed, and the joined errors otherwise.
func (b *Binder[T]) Finish(tree view.Renderable) (view.Renderable, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return tree, nil
}
