package cmd

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:     "preview",
	Aliases: []string{"p"},
	Short:   "Serve the views with live reload",
	Long: `Emit and watch the views like watch does, and serve a page listing them.
Each view's Leaf source is shown at /views/<name>. Browsers reload when a
view is written again, and binding failures appear in an overlay.

Examples:
  leafgen preview
  leafgen preview --port 3000
  leafgen preview --host 0.0.0.0 -p 8080`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var previewFlags *StandardFlags

func init() {
	rootCmd.AddCommand(previewCmd)

	previewFlags = AddStandardFlags(previewCmd, "server")
	AddFlagValidation(previewCmd, "port", ValidatePort)
}

func runPreview(cmd *cobra.Command, args []string) error {
	return runSessions(cmd, true)
}
