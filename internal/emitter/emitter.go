// Package emitter renders registered views and writes them as Leaf files.
//
// Views are rendered by a pool of workers. Each output is hashed and only
// written when it differs from the file already on disk, so re-emitting an
// unchanged tree leaves file modification times alone. Writes go to a
// temporary file that is renamed into place. After a run the manifest
// describing every emitted view is rewritten.
package emitter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"sync"
	"time"

	"github.com/conneroisu/leafgen/internal/config"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/logging"
	"github.com/conneroisu/leafgen/internal/registry"
)

// Emitter writes the views of a registry into the output directory.
type Emitter struct {
	output    config.OutputConfig
	registry  *registry.ViewRegistry
	logger    logging.Logger
	workers   int
	metrics   *EmitMetrics
	callbacks []EmitCallback
	mutex     sync.Mutex
}

// EmitResult represents the outcome for one view.
type EmitResult struct {
	View     string
	File     string
	Hash     string
	Written  bool
	Error    error
	Duration time.Duration
}

// Unchanged reports whether the file on disk already held the output.
func (r EmitResult) Unchanged() bool {
	return r.Error == nil && !r.Written
}

// EmitCallback is called for every result, from the goroutine running Emit.
type EmitCallback func(result EmitResult)

// Option configures an Emitter.
type Option func(*Emitter)

// WithWorkers sets the number of rendering workers.
func WithWorkers(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an emitter for the views of reg.
func New(output config.OutputConfig, reg *registry.ViewRegistry, opts ...Option) *Emitter {
	e := &Emitter{
		output:   output,
		registry: reg,
		logger:   logging.Discard(),
		workers:  runtime.NumCPU(),
		metrics:  NewEmitMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("emitter")
	return e
}

// AddCallback adds a callback invoked for each emitted view.
func (e *Emitter) AddCallback(callback EmitCallback) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.callbacks = append(e.callbacks, callback)
}

// Metrics returns a snapshot of the emit metrics.
func (e *Emitter) Metrics() EmitMetrics {
	return e.metrics.GetSnapshot()
}

// Report summarises one Emit run.
type Report struct {
	Results []EmitResult
	Errors  *lerrors.ErrorCollector
}

// Written returns the names of the views whose files changed.
func (r *Report) Written() []string {
	var names []string
	for _, result := range r.Results {
		if result.Written {
			names = append(names, result.View)
		}
	}
	return names
}

// Emit renders and writes the named views, or every registered view when
// no names are given. Failures of single views do not stop the others;
// they are collected in the report and joined into the returned error.
func (e *Emitter) Emit(ctx context.Context, names ...string) (*Report, error) {
	perf := logging.StartOperation(e.logger, "emit")

	entries, err := e.selectEntries(names)
	if err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	if err := ensureDir(e.output.Dir); err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	report := &Report{Errors: lerrors.NewErrorCollector()}
	report.Results = e.run(ctx, entries)

	e.mutex.Lock()
	callbacks := append([]EmitCallback(nil), e.callbacks...)
	e.mutex.Unlock()

	for _, result := range report.Results {
		e.metrics.RecordEmit(result)
		report.Errors.Add(result.View, result.Error)

		switch {
		case result.Error != nil:
			e.logger.Warn(ctx, result.Error, "View failed", "view", result.View)
		case result.Written:
			e.logger.Info(ctx, "View written", "view", result.View, "file", result.File)
			e.registry.Touch(result.View)
		default:
			e.logger.Debug(ctx, "View unchanged", "view", result.View)
		}

		for _, callback := range callbacks {
			callback(result)
		}
	}

	if e.output.Manifest {
		if err := e.writeManifest(); err != nil {
			report.Errors.Add(ManifestFile, err)
		}
	}

	err = report.Errors.Err()
	if err != nil {
		perf.EndWithError(ctx, err, "views", len(entries))
	} else {
		perf.End(ctx, "views", len(entries), "written", len(report.Written()))
	}
	return report, err
}

func (e *Emitter) selectEntries(names []string) ([]*registry.Entry, error) {
	if len(names) == 0 {
		return e.registry.All(), nil
	}
	entries := make([]*registry.Entry, 0, len(names))
	for _, name := range names {
		entry, err := e.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// run renders entries on the worker pool and returns the results in the
// order of entries.
func (e *Emitter) run(ctx context.Context, entries []*registry.Entry) []EmitResult {
	results := make([]EmitResult, len(entries))
	tasks := make(chan int)

	workers := min(e.workers, len(entries))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				results[idx] = e.emitOne(ctx, entries[idx])
			}
		}()
	}

	for i := range entries {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
	return results
}

func (e *Emitter) emitOne(ctx context.Context, entry *registry.Entry) (result EmitResult) {
	start := time.Now()
	result.View = entry.Name
	defer func() { result.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		result.Error = lerrors.NewInternalError(lerrors.ErrCodeInternalError, "emit cancelled", err).WithView(entry.Name)
		return result
	}

	path, err := e.PathFor(entry.Name)
	if err != nil {
		result.Error = err
		return result
	}
	result.File = path

	output, err := entry.Render()
	if err != nil {
		result.Error = lerrors.NewBindingError(lerrors.ErrCodeRenderFailed, "render failed", err).WithView(entry.Name)
		return result
	}

	result.Hash = contentHash([]byte(output))
	if existing, ok := fileHash(path); ok && existing == result.Hash {
		return result
	}

	if err := writeAtomic(path, []byte(output)); err != nil {
		result.Error = lerrors.NewIOError(lerrors.ErrCodeWriteFailed, "write failed", err).WithView(entry.Name).WithFile(path)
		return result
	}
	result.Written = true
	return result
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
