package emitter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/leafgen/internal/config"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/registry"
	"github.com/conneroisu/leafgen/internal/testutils"
	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/leaf"
	"github.com/conneroisu/leafgen/pkg/view"
)

type Footer struct{ leaf.Static }

func (Footer) Build() (view.Renderable, error) {
	return view.Footer(nil, view.Text("fin")), nil
}

type Post struct {
	Title string `json:"title"`
}

type PostTemplate struct {
	Post Post `json:"post"`
}

func (PostTemplate) ContentField() fieldpath.Ref {
	return fieldpath.Of(func(t *PostTemplate) Post { return t.Post })
}

func (PostTemplate) Build() (view.Renderable, error) {
	b := leaf.For[PostTemplate]()
	return b.Finish(view.H2(nil, b.Keep(leaf.Variable(b, func(t *PostTemplate) string { return t.Post.Title }))))
}

type Broken struct{}

func (Broken) Build() (view.Renderable, error) {
	return nil, &leaf.KeyMismatchError{Op: "foreach", View: "Broken", Want: "post", Got: "entrie"}
}

func newEmitter(t *testing.T, views ...leaf.View) (*Emitter, *registry.ViewRegistry, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Views")
	reg := registry.New(nil)
	reg.MustRegister(views...)
	out := config.OutputConfig{Dir: dir, Extension: ".leaf", Manifest: true}
	return New(out, reg, WithWorkers(2)), reg, dir
}

func TestEmitWritesFiles(t *testing.T) {
	e, _, dir := newEmitter(t, Footer{}, PostTemplate{})

	report, err := e.Emit(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Footer", "PostTemplate"}, report.Written())
	assert.False(t, report.Errors.HasErrors())

	content, err := os.ReadFile(filepath.Join(dir, "Footer.leaf"))
	require.NoError(t, err)
	assert.Equal(t, "<footer>fin</footer>", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "PostTemplate.leaf"))
	require.NoError(t, err)
	assert.Equal(t, "<h2>#(post.title)</h2>", string(content))
	testutils.AssertFilePermissions(t, filepath.Join(dir, "PostTemplate.leaf"), 0o644)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestEmitSkipsUnchanged(t *testing.T) {
	e, _, dir := newEmitter(t, Footer{})

	_, err := e.Emit(context.Background())
	require.NoError(t, err)

	path := filepath.Join(dir, "Footer.leaf")
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	report, err := e.Emit(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Unchanged())
	assert.Empty(t, report.Written())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.WithinDuration(t, old, info.ModTime(), time.Second)

	require.NoError(t, os.WriteFile(path, []byte("edited"), 0o644))
	report, err = e.Emit(context.Background(), "Footer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Footer"}, report.Written())

	snapshot := e.Metrics()
	assert.Equal(t, int64(3), snapshot.TotalEmits)
	assert.Equal(t, int64(2), snapshot.Written)
	assert.Equal(t, int64(1), snapshot.Unchanged)
}

func TestEmitCollectsFailures(t *testing.T) {
	e, _, dir := newEmitter(t, Footer{}, Broken{})

	report, err := e.Emit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, leaf.ErrKeyMismatch)

	failures := report.Errors.ByView("Broken")
	require.Len(t, failures, 1)
	assert.Equal(t, lerrors.ErrCodeKeyMismatch, failures[0].Err.Code)

	_, statErr := os.Stat(filepath.Join(dir, "Footer.leaf"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "Broken.leaf"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	assert.Equal(t, int64(1), e.Metrics().Failed)
}

func TestEmitUnknownView(t *testing.T) {
	e, _, _ := newEmitter(t, Footer{})

	report, err := e.Emit(context.Background(), "Missing")
	assert.Nil(t, report)
	assert.True(t, lerrors.HasErrorCode(err, lerrors.ErrCodeViewNotFound))
}

func TestEmitCancelled(t *testing.T) {
	e, _, _ := newEmitter(t, Footer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := e.Emit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Written())
}

func TestEmitNotifiesRegistryAndCallbacks(t *testing.T) {
	e, reg, _ := newEmitter(t, Footer{})
	events := reg.Watch()
	defer reg.UnWatch(events)

	var mu sync.Mutex
	var seen []string
	e.AddCallback(func(result EmitResult) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, result.View)
	})

	_, err := e.Emit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Footer"}, seen)

	select {
	case ev := <-events:
		assert.Equal(t, registry.EventTypeUpdated, ev.Type)
		assert.Equal(t, "Footer", ev.Entry.Name)
	case <-time.After(time.Second):
		t.Fatal("no update event")
	}
}

func TestManifest(t *testing.T) {
	e, _, dir := newEmitter(t, Footer{}, PostTemplate{}, Broken{})

	_, err := e.Emit(context.Background())
	require.Error(t, err)

	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, ".leaf", m.Extension)
	require.Len(t, m.Views, 2)

	assert.Equal(t, "Footer", m.Views[0].Name)
	assert.Equal(t, "static", m.Views[0].Kind)
	assert.Equal(t, "Footer.leaf", m.Views[0].File)
	assert.Empty(t, m.Views[0].Content)

	assert.Equal(t, "PostTemplate", m.Views[1].Name)
	assert.Equal(t, "template", m.Views[1].Kind)
	assert.Equal(t, "post", m.Views[1].Content)
	assert.Equal(t, "emitter.Post", m.Views[1].ContentType)
	assert.Len(t, m.Views[1].Hash, 64)
}

func TestManifestDisabled(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New(nil)
	reg.MustRegister(Footer{})
	e := New(config.OutputConfig{Dir: dir, Extension: ".leaf"}, reg)

	_, err := e.Emit(context.Background())
	require.NoError(t, err)

	_, err = ReadManifest(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPathForAndViewFor(t *testing.T) {
	e, _, dir := newEmitter(t, Footer{})

	path, err := e.PathFor("Footer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Footer.leaf"), path)

	for _, name := range []string{"../escape", "", "a/b"} {
		_, err := e.PathFor(name)
		assert.True(t, lerrors.HasErrorCode(err, lerrors.ErrCodePathTraversal), name)
	}

	name, ok := e.ViewFor(path)
	assert.True(t, ok)
	assert.Equal(t, "Footer", name)

	_, ok = e.ViewFor(filepath.Join(dir, "Unknown.leaf"))
	assert.False(t, ok)
	_, ok = e.ViewFor(filepath.Join(dir, ManifestFile))
	assert.False(t, ok)
	_, ok = e.ViewFor(filepath.Join(dir, "sub", "Footer.leaf"))
	assert.False(t, ok)
	assert.Equal(t, dir, e.Dir())
}

func TestMetricsReset(t *testing.T) {
	m := NewEmitMetrics()
	assert.Zero(t, m.UnchangedRate())

	m.RecordEmit(EmitResult{Duration: 2 * time.Millisecond})
	m.RecordEmit(EmitResult{Written: true, Duration: 4 * time.Millisecond})
	assert.Equal(t, 50.0, m.UnchangedRate())
	assert.Equal(t, 3*time.Millisecond, m.GetSnapshot().AverageDuration)

	m.Reset()
	assert.Equal(t, int64(0), m.GetSnapshot().TotalEmits)
}
