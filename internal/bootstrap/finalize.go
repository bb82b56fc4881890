package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/suganuamtec/fieldlog/internal/config"
)

// Finalize hands off to the external finalization script (install.py) using
// the env's interpreter, so shortcut and bundle creation run against the
// provisioned dependencies. Mode flags come from the profile (--skip-qt is
// always passed, since the Qt binding was installed here with fallback logic
// the script must not redo) plus the optional --dmg passthrough on platforms
// that support it.
//
// The returned error is advisory: callers report it as a warning and keep
// exit code 0. The environment is the deliverable; the shortcut is a
// convenience with a documented manual fallback.
func Finalize(r Runner, env Env, appDir string, profile config.Profile, buildDMG bool) error {
	script := filepath.Join(appDir, profile.FinalizeScript)
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("finalizer %s not found: %w", script, err)
	}

	args := append([]string{script}, profile.FinalizeArgs...)
	if buildDMG && profile.SupportsDMG {
		args = append(args, "--dmg")
	}

	if err := r.RunAttached(env.Python, args...); err != nil {
		return fmt.Errorf("%s exited with an error: %w", profile.FinalizeScript, err)
	}
	return nil
}
