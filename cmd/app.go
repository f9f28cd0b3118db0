package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/conneroisu/leafgen/internal/config"
	"github.com/conneroisu/leafgen/internal/emitter"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/logging"
	"github.com/conneroisu/leafgen/internal/registry"
	"github.com/conneroisu/leafgen/pkg/fieldpath"
)

// app holds what every command builds from the configuration.
type app struct {
	config   *config.Config
	logger   logging.Logger
	registry *registry.ViewRegistry
	emitter  *emitter.Emitter
	errors   *lerrors.ErrorHandler
}

// loadApp loads the configuration from v and registers the views with the
// configured field naming.
func loadApp(v *viper.Viper) (*app, error) {
	if configErr != nil {
		return nil, lerrors.Wrap(configErr, lerrors.ErrorTypeConfig, lerrors.ErrCodeConfigInvalid, "cannot read configuration file")
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, err
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		return nil, lerrors.Wrap(err, lerrors.ErrorTypeConfig, lerrors.ErrCodeConfigInvalid, "invalid log configuration")
	}

	// Binders created while views build use the default resolver.
	resolver := cfg.Naming.Resolver()
	fieldpath.SetDefault(resolver)

	a := &app{
		config:   cfg,
		logger:   logger,
		registry: registry.New(resolver),
		errors:   lerrors.NewErrorHandler(logger, nil),
	}
	for _, view := range views {
		if _, err := a.registry.Register(view); err != nil {
			return nil, err
		}
	}
	a.emitter = emitter.New(cfg.Output, a.registry, emitter.WithLogger(logger))

	logger.Debug(context.Background(), "Configuration loaded",
		"output", cfg.Output.Dir, "naming", cfg.Naming.Strategy, "views", a.registry.Count())
	return a, nil
}

// fail logs err and explains it on w.
func (a *app) fail(ctx context.Context, w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	return explain(w, a.errors.Handle(ctx, err), a.registry)
}

// explain classifies err and writes hints for fixing it to w. It returns
// the classified error. catalogue may be nil.
func explain(w io.Writer, err error, catalogue lerrors.Catalogue) error {
	le := lerrors.Classify(err)
	if le == nil {
		return nil
	}
	if suggestions := lerrors.Suggest(le, catalogue); len(suggestions) > 0 {
		fmt.Fprint(w, lerrors.FormatSuggestions(le.Error(), suggestions))
	}
	return le
}
