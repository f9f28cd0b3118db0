package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List the registered views",
	Long: `List every registered view with its kind, the path its content is bound
to and the file it is emitted to.

Examples:
  leafgen list                    # Table
  leafgen list -o json            # JSON
  leafgen list -o yaml            # YAML`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFlags *StandardFlags

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")

	AddFlagValidation(listCmd, "output", func(format string) error {
		return ValidateFormat(format, outputFormats)
	})
}

// viewRow is one line of the listing.
type viewRow struct {
	Name        string `json:"name"                  yaml:"name"`
	Kind        string `json:"kind"                  yaml:"kind"`
	Content     string `json:"content,omitempty"     yaml:"content,omitempty"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	File        string `json:"file"                  yaml:"file"`
}

func runList(cmd *cobra.Command, args []string) error {
	if err := listFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	a, err := loadApp(viper.GetViper())
	if err != nil {
		return explain(cmd.ErrOrStderr(), err, nil)
	}

	entries := a.registry.All()
	rows := make([]viewRow, len(entries))
	for i, entry := range entries {
		file, err := a.emitter.PathFor(entry.Name)
		if err != nil {
			return a.fail(cmd.Context(), cmd.ErrOrStderr(), err)
		}
		rows[i] = viewRow{
			Name:        entry.Name,
			Kind:        string(entry.Kind),
			Content:     entry.ContentPath,
			ContentType: entry.ContentType,
			File:        file,
		}
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(listFlags.OutputFormat) {
	case "json":
		return outputListJSON(out, rows)
	case "yaml":
		return outputListYAML(out, rows)
	default:
		if len(rows) == 0 {
			fmt.Fprintln(out, "No views registered.")
			return nil
		}
		return outputListTable(out, rows, listFlags.Verbose)
	}
}

func outputListJSON(w io.Writer, rows []viewRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func outputListYAML(w io.Writer, rows []viewRow) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(rows)
}

func outputListTable(w io.Writer, rows []viewRow, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "NAME\tKIND\tCONTENT\tFILE"
	if verbose {
		header += "\tCONTENT TYPE"
	}
	fmt.Fprintln(tw, header)

	for _, row := range rows {
		content := row.Content
		if content == "" {
			content = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s", row.Name, row.Kind, content, row.File)
		if verbose {
			line += "\t" + row.ContentType
		}
		fmt.Fprintln(tw, line)
	}

	fmt.Fprintf(tw, "\nTotal: %d views\n", len(rows))
	return tw.Flush()
}
