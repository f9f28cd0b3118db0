package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lerrors "github.com/conneroisu/leafgen/internal/errors"
)

var renderCmd = &cobra.Command{
	Use:     "render <view>",
	Aliases: []string{"r"},
	Short:   "Print the Leaf source of one view",
	Long: `Render one view and print the Leaf source to standard output without
writing any file.

Examples:
  leafgen render PostPage
  leafgen render Layout > Layout.leaf`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRender,
	ValidArgsFunction: completeViewNames,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := loadApp(viper.GetViper())
	if err != nil {
		return explain(cmd.ErrOrStderr(), err, nil)
	}

	entry, err := a.registry.Lookup(args[0])
	if err != nil {
		return a.fail(cmd.Context(), cmd.ErrOrStderr(), err)
	}

	out, err := entry.Render()
	if err != nil {
		return a.fail(cmd.Context(), cmd.ErrOrStderr(),
			lerrors.NewBindingError(lerrors.ErrCodeRenderFailed, "render failed", err).WithView(entry.Name))
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
