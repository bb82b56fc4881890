package bootstrap

import (
	"path/filepath"
	"time"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
	"github.com/suganuamtec/fieldlog/internal/manifest"
	"github.com/suganuamtec/fieldlog/internal/state"
)

// Options configures a pipeline run.
type Options struct {
	AppDir       string         // directory holding requirements.txt and install.py
	Profile      config.Profile // platform profile driving every step
	BuildDMG     bool           // pass --dmg through to the finalizer (honored on macOS only)
	SkipFinalize bool           // stop after dependency install
	FindLinks    string         // extracted offline wheel directory; empty means install online
	StatePath    string         // state file override; empty uses the default next to AppDir
}

// Pipeline is the linear bootstrap sequence:
//
//	runtime discovery -> capability check -> env provisioning ->
//	dependency install -> delegated finalization
//
// Each stage either succeeds or returns a *Failure that aborts the rest.
// The only branch that is not strictly linear is provisioning's
// reuse-or-create decision, and the only retry is the GUI binding
// alternatives fallback inside dependency install.
type Pipeline struct {
	runner    Runner
	opts      Options
	statePath string
	st        *state.State
}

// New loads saved state and returns a ready pipeline.
func New(r Runner, opts Options) *Pipeline {
	statePath := opts.StatePath
	if statePath == "" {
		statePath = state.DefaultPath(opts.AppDir)
	}
	return &Pipeline{
		runner:    r,
		opts:      opts,
		statePath: statePath,
		st:        state.Load(statePath),
	}
}

// State exposes the loaded state for reporting (doctor, clean).
func (p *Pipeline) State() *state.State {
	return p.st
}

// Run executes the full sequence. Any fatal stage error is returned as-is;
// finalization problems are reported as warnings and never affect the result.
func (p *Pipeline) Run() error {
	env, err := p.EnsureEnvironment()
	if err != nil {
		return err
	}
	if err := p.InstallDependencies(env); err != nil {
		return err
	}
	if !p.opts.SkipFinalize {
		p.Finalize(env)
	}
	return nil
}

// EnsureEnvironment runs discovery, the capability checks, and provisioning,
// then records the outcome in the state file. Returns the usable env.
func (p *Pipeline) EnsureEnvironment() (Env, error) {
	py, err := Discover(p.runner, p.opts.Profile)
	if err != nil {
		return Env{}, err
	}
	logger.Success("Python found       → %s (%s)", py.Path, py.Version)

	if len(p.opts.Profile.Capabilities) > 0 {
		if err := CheckCapabilities(p.runner, py, p.opts.Profile.Capabilities); err != nil {
			return Env{}, err
		}
		logger.Success("Required modules OK")
	}

	env, created, err := EnsureEnv(p.runner, py, p.opts.AppDir, p.opts.Profile)
	if err != nil {
		return Env{}, err
	}
	if created {
		logger.Success("Environment created → %s", env.Dir)
		// A fresh env invalidates whatever the old state said was installed.
		p.st.Deps = state.DepsState{}
		p.st.Finalized = false
		p.st.Env = state.EnvState{Path: env.Dir, CreatedAt: time.Now().Format(time.RFC3339)}
	} else {
		logger.Success("Reusing environment → %s", env.Dir)
		if p.st.Env.Path == "" {
			p.st.Env.Path = env.Dir
		}
	}

	p.st.Runtime = state.RuntimeState{Command: py.Command, Path: py.Path, Version: py.Version}
	state.Save(p.statePath, p.st)
	return env, nil
}

// InstallDependencies installs the manifest into env, with the GUI binding
// alternatives handled separately in preference order. An unchanged manifest
// hash skips the whole step, keeping repeat runs fast and quiet.
func (p *Pipeline) InstallDependencies(env Env) error {
	manifestPath := filepath.Join(p.opts.AppDir, manifest.FileName)

	hash, err := manifest.Hash(manifestPath)
	if err != nil {
		return &Failure{
			Kind:   KindDependencyInstallFail,
			Err:    err,
			Detail: "dependency manifest missing or unreadable",
		}
	}

	if p.st.Deps.ManifestSHA256 == hash && p.st.Deps.ManifestSHA256 != "" {
		logger.Success("Dependencies current. Skipping install.")
		return nil
	}

	reqs, err := manifest.Load(manifestPath)
	if err != nil {
		return &Failure{Kind: KindDependencyInstallFail, Err: err, Detail: "could not parse " + manifest.FileName}
	}

	altNames := make([]string, len(p.opts.Profile.GUIAlternatives))
	for i, alt := range p.opts.Profile.GUIAlternatives {
		altNames[i] = alt.Name
	}
	regular, _ := manifest.Split(reqs, altNames)

	if err := EnsurePip(p.runner, env); err != nil {
		return err
	}

	logger.Step("Installing Python dependencies...")
	if err := InstallRequirements(p.runner, env, manifest.Specs(regular), p.opts.FindLinks); err != nil {
		return err
	}
	logger.Success("Dependencies installed")

	winner, err := InstallFirstAlternative(p.runner, env, p.opts.Profile.GUIAlternatives, p.opts.FindLinks)
	if err != nil {
		return err
	}
	if winner != "" {
		label := winner
		if winner != p.opts.Profile.GUIAlternatives[0].Name {
			label += " (fallback)"
		}
		logger.Success("Qt installed       → %s", label)
	}

	p.st.Deps = state.DepsState{
		ManifestSHA256: hash,
		GUIAlternative: winner,
		InstalledAt:    time.Now().Format(time.RFC3339),
	}
	state.Save(p.statePath, p.st)
	return nil
}

// Finalize runs install.py and reports the result. Failure here is a
// warning: the env already works and the manual launch command is printed.
func (p *Pipeline) Finalize(env Env) {
	logger.Step("Creating desktop shortcut...")
	if err := Finalize(p.runner, env, p.opts.AppDir, p.opts.Profile, p.opts.BuildDMG); err != nil {
		logger.Skip("Could not create shortcut: %v", err)
		logger.Skip("Launch manually with:  %s", p.opts.Profile.ManualLaunch)
		return
	}
	logger.Success("Shortcut created")
	p.st.Finalized = true
	state.Save(p.statePath, p.st)
}
