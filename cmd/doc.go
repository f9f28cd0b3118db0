// Package cmd provides the command-line interface for leafgen.
//
// The commands are built with Cobra and operate on the views the binary was
// built with, passed to Execute by main.
//
// # Available Commands
//
//   - init: write a .leafgen.yml, interactively or with the defaults
//   - emit: write views as Leaf files
//   - list: list the registered views
//   - render: print the Leaf source of one view
//   - watch: re-emit views when their files or the configuration change
//   - preview: watch and serve the views with live reload
//   - version: show build information
//
// # Configuration
//
// Commands read configuration from these sources, highest precedence first:
//
//  1. Command-line flags
//  2. Environment variables (LEAFGEN_*, e.g. LEAFGEN_OUTPUT_DIR)
//  3. The configuration file: --config, then LEAFGEN_CONFIG_FILE, then
//     .leafgen.yml in the working directory
//  4. Default values
//
// # Errors
//
// Binding failures are reported with the view they occurred in and hints
// for fixing them. Exit status is 1 on any failure.
package cmd
