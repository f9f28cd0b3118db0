package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/leafgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Write a configuration file",
	Long: `Ask for the output directory, file extension, field naming and preview
port, and write them to .leafgen.yml. With --defaults nothing is asked.

Examples:
  leafgen init
  leafgen init --defaults
  leafgen init --file dev.leafgen.yml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initDefaults bool
	initFile     string

	// initPrompter asks the wizard's questions; nil asks on the terminal.
	initPrompter config.Prompter
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write the defaults without asking")
	initCmd.Flags().StringVarP(&initFile, "file", "f", ".leafgen.yml", "File to write")
}

func runInit(cmd *cobra.Command, args []string) error {
	wizard := config.NewConfigWizard(initPrompter)

	if !initDefaults {
		if _, err := wizard.Run(); err != nil {
			return err
		}
	}

	if err := wizard.WriteConfigFile(initFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", initFile)
	return nil
}
