package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/leafgen/internal/emitter"
)

var emitCmd = &cobra.Command{
	Use:     "emit [view...]",
	Aliases: []string{"e"},
	Short:   "Write views as Leaf files",
	Long: `Render views and write them into the output directory, one file per view
named after its type. Files whose content did not change are left alone.
A manifest.yml describing the views is written next to them unless
output.manifest is false.

Examples:
  leafgen emit                    # Every view
  leafgen emit PostPage Layout    # Selected views
  leafgen emit -i                 # Pick views interactively`,
	RunE:              runEmit,
	ValidArgsFunction: completeViewNames,
}

var (
	emitInteractive bool
	emitFlags       *StandardFlags
)

// selectViews asks which of names to emit.
var selectViews = func(names []string) ([]string, error) {
	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Views to emit:",
		Options: names,
		Default: names,
	}
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}
	return selected, nil
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().BoolVarP(&emitInteractive, "interactive", "i", false, "Pick the views to emit")
	emitFlags = &StandardFlags{}
	emitCmd.Flags().BoolVarP(&emitFlags.Verbose, "verbose", "v", false, "Also list unchanged files and render timing")
	emitCmd.Flags().BoolVarP(&emitFlags.Quiet, "quiet", "q", false, "Suppress output")
}

func runEmit(cmd *cobra.Command, args []string) error {
	if err := emitFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	a, err := loadApp(viper.GetViper())
	if err != nil {
		return explain(cmd.ErrOrStderr(), err, nil)
	}

	names := args
	if emitInteractive {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --interactive with view names")
		}
		names, err = selectViews(a.registry.Names())
		if err != nil {
			return fmt.Errorf("view selection: %w", err)
		}
	}

	report, err := a.emitter.Emit(cmd.Context(), names...)
	if report == nil {
		return a.fail(cmd.Context(), cmd.ErrOrStderr(), err)
	}

	if !emitFlags.Quiet {
		printReport(cmd.OutOrStdout(), report, emitFlags.Verbose)
	}
	if emitFlags.Verbose {
		metrics := a.emitter.Metrics()
		printMetrics(cmd.OutOrStdout(), &metrics)
	}

	if err != nil {
		for _, failure := range report.Errors.Errors() {
			_ = explain(cmd.ErrOrStderr(), failure.Err, a.registry)
		}
		return fmt.Errorf("%d of %d views failed", len(report.Errors.Errors()), len(report.Results))
	}
	return nil
}

func printReport(w io.Writer, report *emitter.Report, verbose bool) {
	var written, unchanged, failed int
	for _, result := range report.Results {
		switch {
		case result.Error != nil:
			failed++
			fmt.Fprintf(w, "  failed     %s\n", result.View)
		case result.Written:
			written++
			fmt.Fprintf(w, "  written    %s\n", result.File)
		default:
			unchanged++
			if verbose {
				fmt.Fprintf(w, "  unchanged  %s\n", result.File)
			}
		}
	}
	fmt.Fprintf(w, "%d written, %d unchanged, %d failed\n", written, unchanged, failed)
}

// completeViewNames completes registered view names.
func completeViewNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	a, err := loadApp(viper.GetViper())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return a.registry.Names(), cobra.ShellCompDirectiveNoFileComp
}

// printMetrics prints the timing of the views rendered so far.
func printMetrics(w io.Writer, m *emitter.EmitMetrics) {
	fmt.Fprintf(w, "%d views rendered in %s (average %s, %.0f%% unchanged)\n",
		m.TotalEmits,
		m.TotalDuration.Round(time.Microsecond),
		m.AverageDuration.Round(time.Microsecond),
		m.UnchangedRate())
}
