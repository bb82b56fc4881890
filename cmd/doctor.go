package cmd

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/suganuamtec/fieldlog/internal/bootstrap"
	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
	"github.com/suganuamtec/fieldlog/internal/state"
)

// doctorCmd is a read-only diagnosis: it probes the runtime candidates and
// every required capability, reports what it finds along with remediation,
// and never writes to disk. Unlike the pipeline it does not stop at the
// first missing capability, so one run shows everything left to fix.
// Exit code is 0 only when a usable runtime and all capabilities are present.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check runtime and capabilities without changing anything",
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := config.LoadProfile(configPath, runtime.GOOS)
		if err != nil {
			fail(err)
		}
		runner := bootstrap.NewRunner()

		logger.Banner("FieldLog Doctor")
		healthy := true

		py, err := bootstrap.Discover(runner, profile)
		if err != nil {
			logger.Skip("No Python runtime found")
			logger.Step("To fix, run:  %s", profile.RuntimeRemedy)
			healthy = false
		} else {
			logger.Success("Python found       → %s (%s)", py.Path, py.Version)

			for _, cap := range profile.Capabilities {
				if cerr := bootstrap.CheckCapabilities(runner, py, []config.Capability{cap}); cerr != nil {
					logger.Skip("Module %q missing (needed for %s)", cap.Module, cap.Reason)
					logger.Step("To fix, run:  %s", cap.Remedy)
					healthy = false
				} else {
					logger.Success("Module %q present", cap.Module)
				}
			}
		}

		if env, eerr := bootstrap.ExistingEnv(mustAbs(appDir), profile); eerr == nil {
			logger.Success("Environment ready  → %s", env.Dir)
		} else {
			logger.Step("No environment yet (run `fieldlog-setup up`)")
		}

		sp := statePath
		if sp == "" {
			sp = state.DefaultPath(mustAbs(appDir))
		}
		if st := state.Load(sp); st.Deps.GUIAlternative != "" {
			logger.Success("Qt binding         → %s (installed %s)", st.Deps.GUIAlternative, st.Deps.InstalledAt)
		}

		if !healthy {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
