package leaf_test

import (
	"errors"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/leaf"
	"github.com/conneroisu/leafgen/pkg/view"
)

type SimpleData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SimpleView struct{ leaf.Static }

func (SimpleView) Build() (view.Renderable, error) {
	return view.Div([]view.Attribute{view.ID("Test"), view.Class("some-class")}, view.Text("Hello")), nil
}

type NestedView struct{ leaf.Static }

func (NestedView) Build() (view.Renderable, error) {
	return view.Div(nil,
		view.H1(nil, view.Text("Title")),
		view.P(nil, view.Text("Text")),
	), nil
}

type SimpleTemplate struct {
	Content SimpleData `json:"content"`
}

func (SimpleTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *SimpleTemplate) SimpleData { return t.Content })
}

func (SimpleTemplate) Build() (view.Renderable, error) {
	b := leaf.For[SimpleTemplate]()
	return b.Finish(view.Div(nil,
		view.H1(nil, b.Keep(leaf.Variable(b, func(t *SimpleTemplate) string { return t.Content.Title }))),
		view.P(nil, b.Keep(leaf.Variable(b, func(t *SimpleTemplate) string { return t.Content.Description }))),
	))
}

type EmbedingStaticView struct {
	SimpleData SimpleData `json:"simpleData"`
}

func (EmbedingStaticView) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *EmbedingStaticView) SimpleData { return t.SimpleData })
}

func (EmbedingStaticView) Build() (view.Renderable, error) {
	b := leaf.For[EmbedingStaticView]()
	return b.Finish(view.Div(nil,
		view.H1(nil, b.Keep(leaf.Variable(b, func(t *EmbedingStaticView) string { return t.SimpleData.Title }))),
		leaf.EmbedStatic[SimpleView](),
	))
}

type BaseTemplateView struct {
	ExtraHeader view.Captured `json:"extraHeader"`
	Content     view.Captured `json:"content"`
}

type BaseTemplate struct {
	Content SimpleData       `json:"content"`
	Views   BaseTemplateView `json:"views"`
}

func (BaseTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *BaseTemplate) SimpleData { return t.Content })
}

func (BaseTemplate) Build() (view.Renderable, error) {
	b := leaf.For[BaseTemplate]()
	return b.Finish(view.Html(nil,
		view.Head(nil,
			view.Title(nil, b.Keep(leaf.Variable(b, func(t *BaseTemplate) string { return t.Content.Title }))),
			view.MetaTag("description", b.KeepText(leaf.Variable(b, func(t *BaseTemplate) string { return t.Content.Description }))),
			b.Keep(leaf.Get(b, func(t *BaseTemplate) view.Captured { return t.Views.ExtraHeader })),
		),
		view.Body(nil,
			b.Keep(leaf.Get(b, func(t *BaseTemplate) view.Captured { return t.Views.Content })),
		),
	))
}

type UsingBaseTemplate struct {
	Content SimpleData `json:"content"`
}

func (UsingBaseTemplate) Build() (view.Renderable, error) {
	b := leaf.For[UsingBaseTemplate]()
	return b.Finish(view.Group{
		b.Keep(leaf.Set(b, func(t *BaseTemplate) view.Captured { return t.Views.ExtraHeader }, func() view.Renderable {
			return view.LinkTo("some-url")
		})),
		b.Keep(leaf.Set(b, func(t *BaseTemplate) view.Captured { return t.Views.Content }, func() view.Renderable {
			return view.H1(nil, view.Text("Some title"))
		})),
		b.Keep(leaf.EmbedTemplate[BaseTemplate](b)),
	})
}

type ForEachViewTest struct {
	SimpleDatas []SimpleData `json:"simpleDatas"`
}

func (ForEachViewTest) Build() (view.Renderable, error) {
	b := leaf.For[ForEachViewTest]()
	return b.Finish(view.Div(nil,
		b.Keep(leaf.ForEach[EmbedingStaticView](b, func(t *ForEachViewTest) []SimpleData { return t.SimpleDatas })),
	))
}

// OtherNameTemplate binds its content under a name no loop pluralizes to.
type OtherNameTemplate struct {
	Other SimpleData `json:"otherName"`
}

func (OtherNameTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *OtherNameTemplate) SimpleData { return t.Other })
}

func (OtherNameTemplate) Build() (view.Renderable, error) {
	return view.Text(""), nil
}

// StringTemplate uses the right name with the wrong type.
type StringTemplate struct {
	SimpleData string `json:"simpleData"`
}

func (StringTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *StringTemplate) string { return t.SimpleData })
}

func (StringTemplate) Build() (view.Renderable, error) {
	return view.Text(""), nil
}

// ForeignTemplate declares a content field of another type.
type ForeignTemplate struct {
	Content SimpleData `json:"content"`
}

func (ForeignTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *SimpleTemplate) SimpleData { return t.Content })
}

func (ForeignTemplate) Build() (view.Renderable, error) {
	return view.Text(""), nil
}

type Page struct {
	Post SimpleData `json:"post"`
}

// NestedContentTemplate reads its content one level down.
type NestedContentTemplate struct {
	Page Page `json:"page"`
}

func (NestedContentTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *NestedContentTemplate) SimpleData { return t.Page.Post })
}

func (NestedContentTemplate) Build() (view.Renderable, error) {
	b := leaf.For[NestedContentTemplate]()
	return b.Finish(b.Keep(leaf.Variable(b, func(t *NestedContentTemplate) string { return t.Page.Post.Title })))
}

// BrokenView fails two bindings.
type BrokenView struct {
	Body   SimpleData `json:"body"`
	Secret string     `json:"-"`
}

func (BrokenView) Build() (view.Renderable, error) {
	b := leaf.For[BrokenView]()
	return b.Finish(view.Div(nil,
		b.Keep(leaf.Variable(b, func(t *BrokenView) string { return t.Secret })),
		b.Keep(leaf.EmbedTemplate[BaseTemplate](b)),
	))
}

var errFailing = errors.New("failing render")

type failing struct{}

func (failing) Render() (string, error) { return "", errFailing }
