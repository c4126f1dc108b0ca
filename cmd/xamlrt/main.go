// Xamlrt loads declarative UI markup into an element tree and runs it.
//
// A document (XAML-style XML or the equivalent YAML) becomes a tree of
// windows, pages, layouts and widgets. The tree can be dumped, rendered to
// the terminal or to HTML, run as an interactive terminal program, or served
// so that remote clients raise events on it over websocket.
//
// Event attributes such as Click="OnGo" name methods. Methods are bound in
// the configuration file (see 'xamlrt config init').
//
// Usage:
//
//	xamlrt [command] [flags]
//
// See 'xamlrt --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/xamlrt/internal/config"
	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel   string
	configPath string
)

// appConfig is loaded once before any command runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "xamlrt",
	Short: "Declarative markup UI runtime",
	Long: `Load XAML-style UI markup into an element tree and run it.

Documents may be XML (.xaml, .xml) or YAML (.yaml, .yml). Event attributes
such as Click="OnGo" bubble from the element that raised them to the root,
calling every method they name along the way. Methods are bound to actions
in the configuration file.`,
	Version: version.Version,
	Example: `  # Print the element tree
  xamlrt dump form.xaml

  # Run the document as an interactive terminal program
  xamlrt run form.xaml

  # Serve the document for remote events
  xamlrt serve form.xaml --listen 0.0.0.0:7878

  # Click a button on a running server
  xamlrt fire node-3 Click --addr 127.0.0.1:7878`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default: user config dir)")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and initializes logging. The level comes
// from --log-level, then the config file, then XAMLRT_LOG_LEVEL.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		appConfig, err = config.LoadFrom(configPath)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logLevel
	if level == "" {
		level = appConfig.Preferences.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("xamlrt %s\n", version.Full())
	},
}
