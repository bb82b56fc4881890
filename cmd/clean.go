package cmd

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
	"github.com/suganuamtec/fieldlog/internal/state"
)

// cleanCmd removes the provisioned environment and the state file, returning
// the application directory to its fresh state. The next `up` run recreates
// everything from scratch. Shortcuts created by install.py are left alone;
// they simply stop working until the environment is provisioned again.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the provisioned environment and state file",
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := config.LoadProfile(configPath, runtime.GOOS)
		if err != nil {
			fail(err)
		}
		dir := mustAbs(appDir)

		envDir := filepath.Join(dir, profile.EnvDir)
		if _, err := os.Stat(envDir); err == nil {
			if err := os.RemoveAll(envDir); err != nil {
				logger.Error("[ERROR] Failed to remove %s: %v\n", envDir, err)
				os.Exit(1)
			}
			logger.Success("Removed environment → %s", envDir)
		} else {
			logger.Step("No environment at %s", envDir)
		}

		sp := statePath
		if sp == "" {
			sp = state.DefaultPath(dir)
		}
		if err := os.Remove(sp); err == nil {
			logger.Success("Removed state file  → %s", sp)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
