// Package internal contains the packages behind the leafgen command.
//
// # Package Organization
//
//   - config: configuration loading with viper, validation and the init wizard
//   - registry: the named views of a build and their change events
//   - emitter: renders registered views and writes them as Leaf files
//   - watcher: debounced fsnotify watching that re-emits edited views
//   - preview: HTTP preview of the views with WebSocket live reload
//   - errors: structured errors, suggestions and the preview overlay
//   - logging: structured logging on log/slog
//   - validation: checks for the paths and names written to disk
//   - version: build information
//   - tagsgen: generator for the tag helpers in pkg/view
//   - testutils: filesystem helpers shared by the tests
//
// # Data Flow
//
// Views from pkg/leaf are registered by name in a registry. The emitter
// renders each entry to Leaf source and writes it when the content changed.
// The watcher maps edits in the output directory back to view names and
// asks the emitter to restore them, and the preview server forwards
// registry events to connected browsers.
package internal
