package cmd

import (
	"github.com/spf13/cobra"

	"github.com/suganuamtec/fieldlog/internal/logger"
	"github.com/suganuamtec/fieldlog/internal/state"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// appDir is the application directory holding requirements.txt and
// install.py. The environment and state file live next to them.
var appDir string

// configPath points at the optional setup.yaml profile override.
var configPath string

// statePath overrides where the state file is read and written.
// Empty means the default location inside the application directory.
var statePath string

// rootCmd is the base command for the `fieldlog-setup` CLI.
var rootCmd = &cobra.Command{
	Use:   "fieldlog-setup",
	Short: "FieldLog environment installer",
	Long: "Provisions an isolated Python environment for FieldLog, installs its\n" +
		"dependencies, and creates a desktop shortcut via the bundled install.py.",

	// PersistentPreRun runs before any subcommand; it initializes the
	// logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute initializes flags, registers subcommands, and starts command
// execution. It is the entry point for the CLI when invoked by the user.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&appDir, "dir", "d", ".", "Application directory containing requirements.txt and install.py")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "setup.yaml", "Path to optional profile override file")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the state file (default: <dir>/"+state.FileName+")")

	_ = rootCmd.Execute()
}
