package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/leafgen/internal/emitter"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/preview"
	"github.com/conneroisu/leafgen/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Emit views and keep them in place",
	Long: `Emit every view, then watch the output directory and the configuration
file. An emitted file that is edited or removed is written again; a changed
configuration reloads and re-emits everything.

Examples:
  leafgen watch
  leafgen watch --config dev.leafgen.yml`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return runSessions(cmd, false)
}

// runSessions runs sessions until interrupted, starting a new one whenever
// the configuration file changes.
func runSessions(cmd *cobra.Command, withPreview bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		reload, err := runSession(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), withPreview)
		if err != nil || !reload {
			return err
		}
		configErr = readConfig(viper.GetViper())
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration changed, reloading")
	}
}

// runSession emits every view and regenerates until ctx is done or the
// configuration file changes; it reports the latter with reload.
func runSession(ctx context.Context, out, errOut io.Writer, withPreview bool) (reload bool, err error) {
	a, err := loadApp(viper.GetViper())
	if err != nil {
		return false, explain(errOut, err, nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		metrics := a.emitter.Metrics()
		a.logger.Info(context.Background(), "Session ended",
			"emits", metrics.TotalEmits,
			"written", metrics.Written,
			"failed", metrics.Failed,
			"unchanged_pct", metrics.UnchangedRate(),
			"avg_ms", metrics.AverageDuration.Milliseconds())
	}()

	var server *preview.Server
	if withPreview {
		server = preview.New(a.config.Preview, a.registry, a.logger)
		a.errors = lerrors.NewErrorHandler(a.logger, server)
		a.emitter.AddCallback(func(result emitter.EmitResult) {
			if result.Error != nil {
				_ = server.NotifyError(ctx, lerrors.Classify(result.Error))
			}
		})
	}

	report, err := a.emitter.Emit(ctx)
	if report == nil {
		return false, a.fail(ctx, errOut, err)
	}
	printReport(out, report, false)
	for _, failure := range report.Errors.Errors() {
		_ = explain(errOut, failure.Err, a.registry)
	}

	fw, err := watcher.NewFileWatcher(a.config.Watch.Debounce, a.logger)
	if err != nil {
		return false, fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	if err := fw.AddPath(a.emitter.Dir()); err != nil {
		return false, fmt.Errorf("failed to watch %s: %w", a.emitter.Dir(), err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		if err := fw.AddPath(configFile); err != nil {
			a.logger.Warn(ctx, err, "Configuration file is not watched", "file", configFile)
			configFile = ""
		}
	}

	changed := make(chan struct{}, 1)
	regen := watcher.NewRegenerator(a.emitter, configFile, func(context.Context) error {
		select {
		case changed <- struct{}{}:
		default:
		}
		return nil
	}, a.logger)

	fw.AddFilter(watcher.NoTempFilter)
	fw.AddFilter(regen.Filter())
	fw.AddHandler(regen.Handle)
	if err := fw.Start(ctx); err != nil {
		return false, fmt.Errorf("failed to start file watcher: %w", err)
	}

	serverErr := make(chan error, 1)
	if server != nil {
		go func() { serverErr <- server.Start(ctx) }()
		fmt.Fprintf(out, "Preview at http://%s\n", a.config.Preview.Address())
	}
	fmt.Fprintf(out, "Watching %s (press Ctrl+C to stop)\n", a.emitter.Dir())

	select {
	case <-ctx.Done():
		return false, waitServer(server, serverErr, cancel)
	case err := <-serverErr:
		return false, err
	case <-changed:
		return true, waitServer(server, serverErr, cancel)
	}
}

// waitServer cancels the session and waits for the preview server to
// release its port.
func waitServer(server *preview.Server, serverErr <-chan error, cancel context.CancelFunc) error {
	cancel()
	if server == nil {
		return nil
	}
	return <-serverErr
}
