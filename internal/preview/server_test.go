package preview

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/conneroisu/leafgen/internal/config"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/registry"
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
	return nil, &leaf.KeyMismatchError{Op: "embed", View: "Broken", Want: "post", Got: "[title]"}
}

func newServer(t *testing.T) (*Server, *registry.ViewRegistry) {
	t.Helper()
	reg := registry.New(nil)
	reg.MustRegister(Footer{}, PostTemplate{}, Broken{})
	s := New(config.PreviewConfig{Host: "localhost", Port: 8090}, reg, nil)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, reg
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexListsViews(t *testing.T) {
	s, _ := newServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var links []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, []string{"/views/Broken", "/views/Footer", "/views/PostTemplate"}, links)
	assert.Contains(t, body, "template of preview.Post at post")
}

func TestViewSource(t *testing.T) {
	s, _ := newServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"template", "/views/PostTemplate", http.StatusOK, "<h2>#(post.title)</h2>"},
		{"static", "/views/Footer", http.StatusOK, "<footer>fin</footer>"},
		{"missing", "/views/Nope", http.StatusNotFound, lerrors.ErrCodeViewNotFound},
		{"broken", "/views/Broken", http.StatusUnprocessableEntity, lerrors.ErrCodeKeyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
		})
	}

	_, overlay := get(t, ts.URL+"/errors")
	assert.Contains(t, overlay, "<strong>Broken</strong>")
}

func TestViewsAPIAndHealth(t *testing.T) {
	s, _ := newServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	_, body := get(t, ts.URL+"/api/views")
	var views []viewInfo
	require.NoError(t, json.Unmarshal([]byte(body), &views))
	require.Len(t, views, 3)
	assert.Equal(t, viewInfo{Name: "PostTemplate", Kind: "template", Content: "post", ContentType: "preview.Post"}, views[2])

	_, body = get(t, ts.URL+"/health")
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(3), health["views"])
}

func TestLocalOrigins(t *testing.T) {
	allow := LocalOrigins("preview.test", 8090)

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:8090", true},
		{"http://127.0.0.1:8090", true},
		{"https://preview.test:8090", true},
		{"http://localhost", false},
		{"https://localhost", false},
		{"http://localhost:3000", false},
		{"http://evil.example:8090", false},
		{"file://localhost:8090", false},
		{"::not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, allow(tt.origin))
		})
	}
}

func TestLocalOriginsDefaultPorts(t *testing.T) {
	assert.True(t, LocalOrigins("localhost", 80)("http://localhost"))
	assert.False(t, LocalOrigins("localhost", 80)("https://localhost"))
	assert.True(t, LocalOrigins("localhost", 443)("https://localhost"))
	assert.False(t, LocalOrigins("localhost", 443)("http://localhost"))
}

func TestWebSocketOriginUsesListenerPort(t *testing.T) {
	reg := registry.New(nil)
	reg.MustRegister(Footer{})
	s := New(config.PreviewConfig{Host: "localhost", Port: 0}, reg, nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	base := "http://" + listener.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	status := func(origin string) int {
		req, err := http.NewRequest(http.MethodGet, base+"/ws", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusForbidden, status("http://127.0.0.1"))
	assert.Equal(t, http.StatusForbidden, status("http://127.0.0.1:1"))

	dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
	defer dialCancel()
	conn, _, err := websocket.Dial(dialCtx, "ws://"+listener.Addr().String()+"/ws", &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{base}},
	})
	require.NoError(t, err)
	conn.CloseNow()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s, _ := newServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/ws", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReloadBroadcast(t *testing.T) {
	s, reg := newServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
	defer dialCancel()
	conn, _, err := websocket.Dial(dialCtx, "ws://"+listener.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	reg.Touch("Footer")

	msg := readMessage(t, dialCtx, conn)
	assert.Equal(t, MessageReload, msg.Type)
	assert.Equal(t, "Footer", msg.Target)
	assert.Equal(t, "updated", msg.Content)

	le := lerrors.Classify(&leaf.KeyMismatchError{Op: "foreach", View: "Rows", Want: "row", Got: "item"})
	require.NoError(t, s.NotifyError(ctx, le))

	msg = readMessage(t, dialCtx, conn)
	assert.Equal(t, MessageError, msg.Type)
	assert.Equal(t, "Rows", msg.Target)
	assert.Contains(t, msg.Content, "leafgen-error-overlay")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) UpdateMessage {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var msg UpdateMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}
