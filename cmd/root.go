package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/leafgen/internal/config"
	"github.com/conneroisu/leafgen/pkg/leaf"
)

// ConfigFileEnv names a configuration file to use instead of .leafgen.yml.
const ConfigFileEnv = "LEAFGEN_CONFIG_FILE"

var (
	cfgFile string

	// configErr is the error from reading the configuration file, reported
	// by the first command that needs the configuration.
	configErr error

	// views are the views the binary was built with.
	views []leaf.View
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "leafgen",
	Short: "Generate Leaf templates from typed Go views",
	Long: `leafgen renders views declared as Go types into Leaf template files.

Placeholders such as #(post.title), #for and #embed are derived from the
fields of the view types, so a renamed field or a mismatched embed fails at
generation time instead of in the template engine.

Quick Start:
  leafgen init                    Write a .leafgen.yml
  leafgen emit                    Write every view
  leafgen list                    List the views
  leafgen render PostPage         Print one view
  leafgen watch                   Re-emit views when their files change
  leafgen preview                 Serve the views with live reload

Command Aliases:
  emit (e), list (l), render (r), watch (w), preview (p)`,
	SilenceUsage: true,
}

// Execute registers vs and runs the command line.
func Execute(vs ...leaf.View) error {
	views = vs
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .leafgen.yml, can also use "+ConfigFileEnv+" env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
}

// bindFlags binds the flags that override configuration keys to v.
func bindFlags(v *viper.Viper) error {
	if err := v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	return SetViperBindings(previewCmd, v, map[string]string{
		"port": "preview.port",
		"host": "preview.host",
	})
}

// initConfig points viper at the configuration file: the --config flag,
// then LEAFGEN_CONFIG_FILE, then .leafgen.yml in the working directory.
// A missing default file is not an error.
func initConfig() {
	v := viper.GetViper()
	if err := bindFlags(v); err != nil {
		configErr = err
		return
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(ConfigFileEnv); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".leafgen")
	}

	config.SetDefaults(v)
	config.BindEnv(v)

	configErr = readConfig(v)
	if configErr == nil && v.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}
}

// readConfig reads the configuration file again.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
