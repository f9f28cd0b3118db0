package leaf_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/leaf"
	"github.com/conneroisu/leafgen/pkg/view"
)

func TestViewsRender(t *testing.T) {
	tests := []struct {
		name string
		view leaf.View
		want string
	}{
		{
			name: "static view",
			view: SimpleView{},
			want: "<div id='Test' class='some-class'>Hello</div>",
		},
		{
			name: "nested static view",
			view: NestedView{},
			want: "<div><h1>Title</h1><p>Text</p></div>",
		},
		{
			name: "template variables",
			view: SimpleTemplate{},
			want: "<div><h1>#(content.title)</h1><p>#(content.description)</p></div>",
		},
		{
			name: "static embed",
			view: EmbedingStaticView{},
			want: `<div><h1>#(simpleData.title)</h1>#embed("SimpleView")</div>`,
		},
		{
			name: "slots and attribute variables",
			view: BaseTemplate{},
			want: "<html><head><title>#(content.title)</title><meta name='description' content='#(content.description)'/>#get(views.extraHeader)</head><body>#get(views.content)</body></html>",
		},
		{
			name: "set slots then embed",
			view: UsingBaseTemplate{},
			want: `#set("views.extraHeader") {<link href='some-url'/>}#set("views.content") {<h1>Some title</h1>}#embed("BaseTemplate")`,
		},
		{
			name: "loop",
			view: ForEachViewTest{},
			want: `<div>#for(simpleData in simpleDatas) {#embed("EmbedingStaticView")}</div>`,
		},
		{
			name: "nested content path",
			view: NestedContentTemplate{},
			want: "#(page.post.title)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leaf.Render(tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := leaf.Render(tt.view)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRenderOf(t *testing.T) {
	got, err := leaf.RenderOf[SimpleTemplate]()
	require.NoError(t, err)
	assert.Equal(t, "<div><h1>#(content.title)</h1><p>#(content.description)</p></div>", got)

	got, err = leaf.RenderOf[*NestedView]()
	require.NoError(t, err)
	assert.Equal(t, "<div><h1>Title</h1><p>Text</p></div>", got)

	got, err = leaf.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVariable(t *testing.T) {
	b := leaf.For[BaseTemplate]()

	got, err := leaf.Variable(b, func(t *BaseTemplate) string { return t.Content.Title })
	require.NoError(t, err)
	assert.Equal(t, view.Text("#(content.title)"), got)

	_, err = leaf.Variable(b, func(t *BaseTemplate) string { return "constant" })
	require.Error(t, err)
	assert.ErrorIs(t, err, fieldpath.ErrUnresolvedField)
	assert.Contains(t, err.Error(), "BaseTemplate")
}

func TestEmbedTemplate(t *testing.T) {
	t.Run("caller has the content field", func(t *testing.T) {
		got, err := leaf.EmbedTemplate[BaseTemplate](leaf.For[UsingBaseTemplate]())
		require.NoError(t, err)
		assert.Equal(t, view.Text(`#embed("BaseTemplate")`), got)
	})

	t.Run("caller lacks the content field", func(t *testing.T) {
		_, err := leaf.EmbedTemplate[BaseTemplate](leaf.For[ForEachViewTest]())
		require.Error(t, err)
		assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

		var mismatch *leaf.KeyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "embed", mismatch.Op)
		assert.Equal(t, "BaseTemplate", mismatch.View)
		assert.Equal(t, "content", mismatch.Want)
	})

	t.Run("nested content path matches at its depth", func(t *testing.T) {
		type host struct {
			Page Page `json:"page"`
		}
		got, err := leaf.EmbedTemplate[NestedContentTemplate](leaf.For[host]())
		require.NoError(t, err)
		assert.Equal(t, view.Text(`#embed("NestedContentTemplate")`), got)

		type flat struct {
			Post SimpleData `json:"post"`
		}
		_, err = leaf.EmbedTemplate[NestedContentTemplate](leaf.For[flat]())
		assert.ErrorIs(t, err, leaf.ErrKeyMismatch)
	})

	t.Run("content field on another type", func(t *testing.T) {
		_, err := leaf.EmbedTemplate[ForeignTemplate](leaf.For[UsingBaseTemplate]())
		assert.ErrorIs(t, err, leaf.ErrKeyMismatch)
	})

	t.Run("host is not a struct", func(t *testing.T) {
		_, err := leaf.EmbedTemplate[SimpleTemplate](leaf.For[int]())
		require.Error(t, err)
		assert.ErrorIs(t, err, fieldpath.ErrUnresolvedField)

		var unresolved *fieldpath.UnresolvedFieldError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "int is not a struct", unresolved.Reason)
	})
}

func TestForEach(t *testing.T) {
	sel := func(t *ForEachViewTest) []SimpleData { return t.SimpleDatas }

	t.Run("singular matches content path", func(t *testing.T) {
		got, err := leaf.ForEach[EmbedingStaticView](leaf.For[ForEachViewTest](), sel)
		require.NoError(t, err)
		assert.Equal(t, view.Text(`#for(simpleData in simpleDatas) {#embed("EmbedingStaticView")}`), got)
	})

	t.Run("content path differs", func(t *testing.T) {
		_, err := leaf.ForEach[OtherNameTemplate](leaf.For[ForEachViewTest](), sel)
		require.Error(t, err)

		var mismatch *leaf.KeyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "foreach", mismatch.Op)
		assert.Equal(t, "otherName", mismatch.Want)
		assert.Equal(t, "simpleData", mismatch.Got)
	})

	t.Run("element type differs from content type", func(t *testing.T) {
		_, err := leaf.ForEach[StringTemplate](leaf.For[ForEachViewTest](), sel)
		require.Error(t, err)

		var mismatch *leaf.KeyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "string", mismatch.Want)
		assert.Contains(t, mismatch.Got, "SimpleData")
	})

	t.Run("collection cannot be resolved", func(t *testing.T) {
		_, err := leaf.ForEach[EmbedingStaticView](leaf.For[ForEachViewTest](), func(*ForEachViewTest) []SimpleData {
			return nil
		})
		assert.ErrorIs(t, err, fieldpath.ErrUnresolvedField)
	})

	t.Run("declared plural pairs", func(t *testing.T) {
		type Blog struct {
			Entries []SimpleData `json:"entries"`
		}

		entries := func(b *Blog) []SimpleData { return b.Entries }

		_, err := leaf.ForEach[entryTemplate](leaf.For[Blog](), entries)
		assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

		rule := leaf.Pairs(map[string]string{"entries": "entry"})
		got, err := leaf.ForEach[entryTemplate](leaf.For[Blog](leaf.WithPluralRule(rule)), entries)
		require.NoError(t, err)
		assert.Equal(t, view.Text(`#for(entry in entries) {#embed("entryTemplate")}`), got)
	})
}

type entryTemplate struct {
	Entry SimpleData `json:"entry"`
}

func (entryTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *entryTemplate) SimpleData { return t.Entry })
}

func (entryTemplate) Build() (view.Renderable, error) {
	return view.Text(""), nil
}

func TestPluralRules(t *testing.T) {
	assert.Equal(t, "simpleData", leaf.TrimLastRune("simpleDatas"))
	assert.Equal(t, "café", leaf.TrimLastRune("cafés"))
	assert.Equal(t, "", leaf.TrimLastRune(""))
	assert.Equal(t, "entrie", leaf.TrimLastRune("entries"))

	strict := leaf.Pairs(map[string]string{"people": "person"})
	assert.Equal(t, "person", strict("people"))
	assert.Equal(t, "", strict("posts"))

	fallback := leaf.PairsOr(map[string]string{"people": "person"}, leaf.TrimLastRune)
	assert.Equal(t, "person", fallback("people"))
	assert.Equal(t, "post", fallback("posts"))
}

func TestSetAndGet(t *testing.T) {
	b := leaf.For[UsingBaseTemplate]()
	slot := func(t *BaseTemplate) view.Captured { return t.Views.ExtraHeader }

	set, err := leaf.Set(b, slot, func() view.Renderable { return view.Text("x") })
	require.NoError(t, err)
	assert.Equal(t, view.Text(`#set("views.extraHeader") {x}`), set)

	get, err := leaf.Get(leaf.For[BaseTemplate](), slot)
	require.NoError(t, err)

	// The path inside #get(...) is the one inside #set("...").
	setPath := strings.TrimSuffix(strings.TrimPrefix(string(set), `#set("`), `") {x}`)
	getPath := strings.TrimSuffix(strings.TrimPrefix(string(get), "#get("), ")")
	assert.Equal(t, setPath, getPath)

	empty, err := leaf.Set(b, slot, nil)
	require.NoError(t, err)
	assert.Equal(t, view.Text(`#set("views.extraHeader") {}`), empty)

	_, err = leaf.Set(b, slot, func() view.Renderable { return failing{} })
	require.Error(t, err)
	assert.ErrorIs(t, err, errFailing)

	_, err = leaf.Get(leaf.For[BaseTemplate](), func(*BaseTemplate) view.Captured { return view.One })
	assert.ErrorIs(t, err, fieldpath.ErrUnresolvedField)
}

func TestBinderCollectsErrors(t *testing.T) {
	tree, err := BrokenView{}.Build()
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, fieldpath.ErrUnresolvedField)
	assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

	_, err = leaf.Render(BrokenView{})
	assert.Error(t, err)

	b := leaf.For[SimpleTemplate]()
	assert.Equal(t, "", b.KeepText("", assert.AnError))
	assert.ErrorIs(t, b.Err(), assert.AnError)
}

func TestContentContext(t *testing.T) {
	data := SimpleData{Title: "Hello", Description: "World"}

	ctx, err := leaf.ContentContext[SimpleTemplate](data)
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]any{"content": data}, ctx); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}

	ctx, err = leaf.ContentContext[NestedContentTemplate](data)
	require.NoError(t, err)
	want := map[string]any{"page": map[string]any{"post": data}}
	if diff := cmp.Diff(want, ctx); diff != "" {
		t.Errorf("nested context mismatch (-want +got):\n%s", diff)
	}

	_, err = leaf.ContentContext[SimpleTemplate]("not data")
	assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

	_, err = leaf.ContentContext[SimpleTemplate](nil)
	assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

	_, err = leaf.ContentContext[SimpleTemplate](&data)
	assert.ErrorIs(t, err, leaf.ErrKeyMismatch)
}

func TestEach(t *testing.T) {
	posts := []SimpleData{{Title: "a"}, {Title: "b"}}
	out, err := view.Render(leaf.Each(posts, func(d SimpleData) SimpleView { return SimpleView{} }))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("<div id='Test' class='some-class'>Hello</div>", 2), out)

	out, err = view.Render(leaf.Each([]SimpleData{}, func(SimpleData) SimpleView { return SimpleView{} }))
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = view.Render(leaf.Each(posts, func(SimpleData) BrokenView { return BrokenView{} }))
	assert.Error(t, err)
}

func TestKindAndName(t *testing.T) {
	assert.Equal(t, leaf.KindStatic, leaf.KindOf(SimpleView{}))
	assert.Equal(t, leaf.KindTemplate, leaf.KindOf(BaseTemplate{}))
	assert.Equal(t, leaf.KindView, leaf.KindOf(UsingBaseTemplate{}))

	assert.Equal(t, "BaseTemplate", leaf.TypeName[BaseTemplate]())
	assert.Equal(t, "BaseTemplate", leaf.TypeName[*BaseTemplate]())
	assert.Equal(t, "SimpleView", leaf.NameOf(&SimpleView{}))
	assert.Equal(t, "", leaf.NameOf(nil))
}

func TestConcurrentBuilds(t *testing.T) {
	views := []leaf.View{SimpleTemplate{}, BaseTemplate{}, UsingBaseTemplate{}, ForEachViewTest{}}

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, v := range views {
				out, err := leaf.Render(v)
				if err != nil {
					out = err.Error()
				}
				results[i] = append(results[i], out)
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
	}
}
