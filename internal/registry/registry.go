// Package registry keeps the catalogue of views the CLI can emit.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/pkg/fieldpath"
	"github.com/conneroisu/leafgen/pkg/leaf"
)

// ViewRegistry manages all registered views
type ViewRegistry struct {
	entries  map[string]*Entry
	resolver *fieldpath.Resolver
	mutex    sync.RWMutex
	watchers []chan ViewEvent
}

// Entry holds a registered view and what is known about it without
// building it.
type Entry struct {
	Name string
	Kind leaf.Kind
	// ContentPath and ContentType are only set for templates.
	ContentPath string
	ContentType string
	View        leaf.View
	Registered  time.Time
}

// Render builds and renders the entry's view.
func (e *Entry) Render() (string, error) {
	return leaf.Render(e.View)
}

// ViewEvent represents a change in the view registry
type ViewEvent struct {
	Type      EventType
	Entry     *Entry
	Timestamp time.Time
}

// EventType represents the type of view event
type EventType int

const (
	EventTypeAdded EventType = iota
	// EventTypeUpdated is sent when a view's output was written again.
	EventTypeUpdated
	EventTypeRemoved
)

func (t EventType) String() string {
	switch t {
	case EventTypeAdded:
		return "added"
	case EventTypeUpdated:
		return "updated"
	case EventTypeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// watcherBuffer bounds each watcher channel; events beyond it are dropped.
const watcherBuffer = 100

// New creates an empty registry. Content paths are resolved with r, or the
// default resolver when r is nil.
func New(r *fieldpath.Resolver) *ViewRegistry {
	if r == nil {
		r = fieldpath.Default()
	}
	return &ViewRegistry{
		entries:  make(map[string]*Entry),
		resolver: r,
		watchers: make([]chan ViewEvent, 0),
	}
}

// Register adds v under its type name. Registering a second view with the
// same name fails, as does a template whose content field cannot be
// resolved.
func (r *ViewRegistry) Register(v leaf.View) (*Entry, error) {
	if v == nil {
		return nil, lerrors.NewValidationError(lerrors.ErrCodeInternalError, "cannot register a nil view")
	}

	entry := &Entry{
		Name:       leaf.NameOf(v),
		Kind:       leaf.KindOf(v),
		View:       v,
		Registered: time.Now(),
	}

	if t, ok := v.(leaf.Template); ok {
		ref := t.ContentField()
		if ref == nil {
			return nil, lerrors.NewBindingError(lerrors.ErrCodeUnresolvedField, "template has no content field", nil).WithView(entry.Name)
		}
		path, err := r.resolver.Resolve(ref)
		if err != nil {
			return nil, lerrors.NewBindingError(lerrors.ErrCodeUnresolvedField, "content field", err).WithView(entry.Name)
		}
		entry.ContentPath = path.String()
		entry.ContentType = ref.Type().String()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.entries[entry.Name]; exists {
		return nil, lerrors.NewValidationError(lerrors.ErrCodeDuplicateView,
			fmt.Sprintf("view %s is already registered", entry.Name)).WithView(entry.Name)
	}
	r.entries[entry.Name] = entry
	r.notify(EventTypeAdded, entry)
	return entry, nil
}

// MustRegister is Register for package initialisation; it panics on error.
func (r *ViewRegistry) MustRegister(views ...leaf.View) {
	for _, v := range views {
		if _, err := r.Register(v); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a view by name
func (r *ViewRegistry) Get(name string) (*Entry, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, exists := r.entries[name]
	return entry, exists
}

// Lookup is Get that reports a missing view as an error.
func (r *ViewRegistry) Lookup(name string) (*Entry, error) {
	if entry, ok := r.Get(name); ok {
		return entry, nil
	}
	return nil, lerrors.ErrViewNotFound(name)
}

// All returns every entry ordered by name.
func (r *ViewRegistry) All() []*Entry {
	r.mutex.RLock()
	result := make([]*Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry)
	}
	r.mutex.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Names returns the registered names in order.
func (r *ViewRegistry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, entry := range all {
		names[i] = entry.Name
	}
	return names
}

// Remove removes a view from the registry
func (r *ViewRegistry) Remove(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.entries[name]
	if !exists {
		return
	}

	delete(r.entries, name)
	r.notify(EventTypeRemoved, entry)
}

// Touch tells watchers that the named view was written again. It reports
// whether the view is registered.
func (r *ViewRegistry) Touch(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.entries[name]
	if exists {
		r.notify(EventTypeUpdated, entry)
	}
	return exists
}

// notify must be called with the lock held.
func (r *ViewRegistry) notify(eventType EventType, entry *Entry) {
	event := ViewEvent{
		Type:      eventType,
		Entry:     entry,
		Timestamp: time.Now(),
	}

	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}

// Watch returns a channel that receives view events
func (r *ViewRegistry) Watch() <-chan ViewEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan ViewEvent, watcherBuffer)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *ViewRegistry) UnWatch(ch <-chan ViewEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered views
func (r *ViewRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}
