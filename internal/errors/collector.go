package errors

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/conneroisu/leafgen/pkg/view"
)

var (
	overlayPolicyOnce sync.Once
	overlayPolicy     *bluemonday.Policy
)

// overlayText strips markup from text shown in the overlay and escapes the
// rest.
func overlayText(text string) view.Text {
	overlayPolicyOnce.Do(func() {
		overlayPolicy = bluemonday.StrictPolicy()
	})
	return view.Text(overlayPolicy.Sanitize(text))
}

// ViewError is a failure recorded against one view.
type ViewError struct {
	View      string
	Err       *LeafError
	Timestamp time.Time
}

// ErrorCollector collects view failures across an emit run. It is safe for
// concurrent use.
type ErrorCollector struct {
	errors []ViewError
	mutex  sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add classifies err and records it against name. Nil errors are ignored.
func (ec *ErrorCollector) Add(name string, err error) {
	if err == nil {
		return
	}
	le := Classify(err)
	if le.View == "" {
		// Classify may return the caller's own error.
		named := *le
		named.View = name
		le = &named
	}

	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = append(ec.errors, ViewError{View: name, Err: le, Timestamp: time.Now()})
}

// Errors returns a copy of the recorded failures, ordered by view name and
// then by time.
func (ec *ErrorCollector) Errors() []ViewError {
	ec.mutex.RLock()
	result := make([]ViewError, len(ec.errors))
	copy(result, ec.errors)
	ec.mutex.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].View < result[j].View
	})
	return result
}

// ByView returns the failures recorded against name.
func (ec *ErrorCollector) ByView(name string) []ViewError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	var out []ViewError
	for _, e := range ec.errors {
		if e.View == name {
			out = append(out, e)
		}
	}
	return out
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.errors) > 0
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = ec.errors[:0]
}

// Err joins every recorded failure, or returns nil.
func (ec *ErrorCollector) Err() error {
	recorded := ec.Errors()
	if len(recorded) == 0 {
		return nil
	}
	errs := make([]error, len(recorded))
	for i, e := range recorded {
		errs[i] = e.Err
	}
	return errors.Join(errs...)
}

// Overlay renders the recorded failures as an HTML panel for the preview
// server. It is empty when nothing failed.
func (ec *ErrorCollector) Overlay() (string, error) {
	recorded := ec.Errors()
	if len(recorded) == 0 {
		return "", nil
	}

	return view.Render(view.Div([]view.Attribute{view.ID("leafgen-error-overlay"), view.Class("overlay")},
		view.H2(nil, view.Text("Binding errors")),
		view.Ul(nil, view.ForEach(recorded, func(_ int, e ViewError) view.Renderable {
			return view.Li([]view.Attribute{view.Class("overlay-item", string(e.Err.Type))},
				view.Strong(nil, overlayText(e.View)),
				view.Text(" "),
				view.Span([]view.Attribute{view.Class("code")}, view.Text(e.Err.Code)),
				view.P(nil, overlayText(e.Err.Error())),
				view.Small(nil, view.Text(e.Timestamp.Format("15:04:05"))),
			)
		})),
	))
}
