package preview

import (
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/registry"
	"github.com/conneroisu/leafgen/pkg/view"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;background:#f5f5f5}
main{max-width:960px;margin:0 auto;background:#fff;padding:1.5rem;border-radius:8px}
li{margin:.4rem 0}small{color:#666;margin-left:.5rem}
.overlay{border:2px solid #c0392b;padding:1rem;margin-bottom:1rem;background:#fdecea}
pre{background:#272822;color:#f8f8f2;padding:1rem;overflow:auto}`

// reloadScript reconnects to /ws and reloads the page on every message.
// Error messages replace the overlay instead.
const reloadScript = `(function(){
function connect(){
var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/ws");
ws.onmessage=function(e){
var msg=JSON.parse(e.data);
if(msg.type==="error"){var o=document.getElementById("errors");if(o){o.innerHTML=msg.content;}return;}
location.reload();
};
ws.onclose=function(){setTimeout(connect,1000);};
}
connect();
})();`

// indexPage renders the listing of every view.
func indexPage(entries []*registry.Entry, collector *lerrors.ErrorCollector) (string, error) {
	overlay, err := collector.Overlay()
	if err != nil {
		return "", err
	}

	return view.Render(view.Html([]view.Attribute{view.Lang("en")},
		view.Head(nil,
			view.Meta(view.Charset("utf-8")),
			view.Title(nil, view.Text("leafgen preview")),
			view.Style(nil, view.Text(pageStyle)),
		),
		view.Body(nil,
			view.Main(nil,
				view.H1(nil, view.Text("Views")),
				view.Div([]view.Attribute{view.ID("errors")}, view.Text(overlay)),
				view.Ul(nil, view.ForEach(entries, func(_ int, entry *registry.Entry) view.Renderable {
					return view.Li(nil,
						view.Anchor("/views/"+entry.Name, nil, view.Text(entry.Name)),
						view.Small(nil, view.Text(describe(entry))),
					)
				})),
			),
			view.Script(nil, view.Text(reloadScript)),
		),
	))
}

func describe(entry *registry.Entry) string {
	if entry.ContentPath == "" {
		return string(entry.Kind)
	}
	return string(entry.Kind) + " of " + entry.ContentType + " at " + entry.ContentPath
}
