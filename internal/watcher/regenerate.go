package watcher

import (
	"context"
	"sort"

	"github.com/conneroisu/leafgen/internal/emitter"
	"github.com/conneroisu/leafgen/internal/logging"
)

// ViewEmitter is the part of the emitter the regenerator drives.
type ViewEmitter interface {
	Emit(ctx context.Context, names ...string) (*emitter.Report, error)
	ViewFor(path string) (string, bool)
}

// Regenerator re-emits views when their files are edited or removed, and
// reloads everything when the configuration file changes.
type Regenerator struct {
	emitter  ViewEmitter
	isConfig FileFilter
	onConfig func(ctx context.Context) error
	logger   logging.Logger
}

// NewRegenerator creates a regenerator. onConfig runs when configFile
// changes; it may be nil, and configFile may be empty when there is none.
func NewRegenerator(e ViewEmitter, configFile string, onConfig func(ctx context.Context) error, logger logging.Logger) *Regenerator {
	if logger == nil {
		logger = logging.Discard()
	}
	isConfig := AnyOf()
	if configFile != "" {
		isConfig = PathFilter(configFile)
	}
	return &Regenerator{
		emitter:  e,
		isConfig: isConfig,
		onConfig: onConfig,
		logger:   logger.WithComponent("regenerate"),
	}
}

// Filter accepts the configuration file and files the emitter owns.
func (r *Regenerator) Filter() FileFilter {
	return AnyOf(r.isConfig, r.owned)
}

// owned accepts files that belong to a registered view.
func (r *Regenerator) owned(path string) bool {
	_, ok := r.emitter.ViewFor(path)
	return ok
}

// Handle is a ChangeHandler.
func (r *Regenerator) Handle(ctx context.Context, events []ChangeEvent) error {
	seen := make(map[string]bool)
	var names []string

	for _, event := range events {
		if r.isConfig(event.Path) {
			r.logger.Info(ctx, "Configuration changed, regenerating all views", "file", event.Path)
			if r.onConfig != nil {
				return r.onConfig(ctx)
			}
			_, err := r.emitter.Emit(ctx)
			return err
		}

		name, ok := r.emitter.ViewFor(event.Path)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		r.logger.Debug(ctx, "Emitted file changed", "view", name, "change", event.Type.String())
	}

	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	_, err := r.emitter.Emit(ctx, names...)
	return err
}
