package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/suganuamtec/fieldlog/internal/bootstrap"
	"github.com/suganuamtec/fieldlog/internal/bundle"
	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
)

// buildDMG asks the finalizer to also produce a distributable DMG
// (macOS only; silently ignored elsewhere).
var buildDMG bool

// skipFinalize stops the pipeline after dependency install, leaving shortcut
// creation to a later `up finalize` or a manual install.py run.
var skipFinalize bool

// bundleRef is an optional offline wheel bundle: a local archive, a wheel
// directory, or an owner/repo@tag GitHub release reference.
var bundleRef string

// upCmd runs the full bootstrap pipeline: runtime discovery, capability
// checks, env provisioning, dependency install, and delegated finalization.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the FieldLog environment and create the desktop shortcut",
	Run: func(cmd *cobra.Command, args []string) {
		p, profile := newPipeline()

		logger.Banner("FieldLog Installer")
		logger.Step("Platform : %s", profile.OS)
		logger.Step("Location : %s", mustAbs(appDir))

		if err := p.Run(); err != nil {
			fail(err)
		}

		logger.Banner("Installation complete!")
		logger.Step("To launch FieldLog manually:  %s", profile.ManualLaunch)
	},
}

// upEnvCmd provisions the environment only (discovery, capability checks,
// venv creation or reuse) without installing dependencies.
var upEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Only discover a Python runtime and provision the environment",
	Run: func(cmd *cobra.Command, args []string) {
		p, _ := newPipeline()
		if _, err := p.EnsureEnvironment(); err != nil {
			fail(err)
		}
	},
}

// upDepsCmd installs dependencies into an already provisioned environment.
var upDepsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Only install dependencies into the existing environment",
	Run: func(cmd *cobra.Command, args []string) {
		p, profile := newPipeline()
		env, err := bootstrap.ExistingEnv(mustAbs(appDir), profile)
		if err != nil {
			fail(err)
		}
		if err := p.InstallDependencies(env); err != nil {
			fail(err)
		}
	},
}

// upFinalizeCmd re-runs the finalizer against the existing environment,
// useful after a shortcut was deleted or a previous finalization warned.
var upFinalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Only run install.py against the existing environment",
	Run: func(cmd *cobra.Command, args []string) {
		p, profile := newPipeline()
		env, err := bootstrap.ExistingEnv(mustAbs(appDir), profile)
		if err != nil {
			fail(err)
		}
		p.Finalize(env)
	},
}

// newPipeline resolves the platform profile and the optional offline bundle,
// then builds the pipeline. Profile resolution failures are fatal; a bundle
// that cannot be resolved degrades to a normal online install with a warning.
func newPipeline() (*bootstrap.Pipeline, config.Profile) {
	profile, err := config.LoadProfile(configPath, runtime.GOOS)
	if err != nil {
		fail(err)
	}

	findLinks := ""
	if bundleRef != "" {
		dir, err := bundle.Resolve(bundleRef, runtime.GOOS, runtime.GOARCH)
		if err != nil {
			logger.Warn("[WARN] Offline bundle unavailable (%v). Falling back to online install.\n", err)
		} else {
			logger.Success("Offline bundle     → %s", dir)
			findLinks = dir
		}
	}

	p := bootstrap.New(bootstrap.NewRunner(), bootstrap.Options{
		AppDir:       mustAbs(appDir),
		Profile:      profile,
		BuildDMG:     buildDMG,
		SkipFinalize: skipFinalize,
		FindLinks:    findLinks,
		StatePath:    statePath,
	})
	return p, profile
}

// fail reports a fatal error and exits 1. Pipeline failures print their
// label, cause, and remediation; anything else prints as a plain error.
func fail(err error) {
	var f *bootstrap.Failure
	if errors.As(err, &f) {
		logger.Error("[%s] %s\n", f.Kind, f.Detail)
		if f.Remedy != "" {
			fmt.Println()
			logger.Step("To fix, run:")
			logger.Step("  %s", f.Remedy)
		}
	} else {
		logger.Error("[ERROR] %v\n", err)
	}
	os.Exit(1)
}

// mustAbs resolves a path to absolute, falling back to the input on error.
func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// init sets up CLI flags and registers the `up` command tree.
func init() {
	upCmd.PersistentFlags().BoolVar(&buildDMG, "dmg", false, "Also build a distributable DMG (macOS only)")
	upCmd.PersistentFlags().BoolVar(&skipFinalize, "skip-finalize", false, "Skip the desktop shortcut step")
	upCmd.PersistentFlags().StringVar(&bundleRef, "bundle", "", "Offline wheel bundle: archive path, wheel directory, or owner/repo@tag release")

	upCmd.AddCommand(upEnvCmd)
	upCmd.AddCommand(upDepsCmd)
	upCmd.AddCommand(upFinalizeCmd)
	rootCmd.AddCommand(upCmd)
}
