package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
)

// Env is a provisioned virtual environment.
type Env struct {
	Dir    string // absolute env directory, e.g. /path/to/app/.venv
	Python string // the env's own interpreter, e.g. <Dir>/bin/python
}

// envPaths resolves the env directory and interpreter path for an
// application directory under the given profile.
func envPaths(appDir string, profile config.Profile) Env {
	parts := append([]string{appDir}, profile.EnvPythonPath()...)
	return Env{
		Dir:    filepath.Join(appDir, profile.EnvDir),
		Python: filepath.Join(parts...),
	}
}

// EnsureEnv reuses the virtual environment at the profile's fixed relative
// path, or creates it with the discovered interpreter. Returns the env and
// whether it was created on this run.
//
// Reuse requires the env's interpreter to actually exist: a directory left
// behind by an interrupted earlier run (or a copied tree whose symlinked
// interpreter is dangling) is torn down and recreated rather than reused,
// since pip against a broken env produces far worse diagnostics.
func EnsureEnv(r Runner, py Interpreter, appDir string, profile config.Profile) (Env, bool, error) {
	env := envPaths(appDir, profile)

	if _, err := os.Stat(env.Python); err == nil {
		logger.Debug("[DEBUG] Reusing existing env at %s\n", env.Dir)
		return env, false, nil
	}

	if _, err := os.Stat(env.Dir); err == nil {
		logger.Warn("[WARN] Env at %s has no interpreter. Recreating...\n", env.Dir)
		if err := os.RemoveAll(env.Dir); err != nil {
			return Env{}, false, &Failure{
				Kind:   KindProvisioningFailed,
				Err:    err,
				Detail: "could not remove broken environment " + env.Dir,
			}
		}
	}

	out, err := r.Run(py.Path, "-m", "venv", env.Dir)
	if err != nil {
		return Env{}, false, &Failure{
			Kind:   KindProvisioningFailed,
			Err:    err,
			Detail: fmt.Sprintf("`%s -m venv` failed: %s", py.Command, firstLine(out)),
			Remedy: profile.RuntimeRemedy,
		}
	}

	if _, err := os.Stat(env.Python); err != nil {
		return Env{}, false, &Failure{
			Kind:   KindProvisioningFailed,
			Err:    err,
			Detail: "venv reported success but " + env.Python + " is missing",
		}
	}

	return env, true, nil
}

// ExistingEnv returns the env for appDir if it has already been provisioned.
// Used by the granular subcommands that assume `up env` already ran.
func ExistingEnv(appDir string, profile config.Profile) (Env, error) {
	env := envPaths(appDir, profile)
	if _, err := os.Stat(env.Python); err != nil {
		return Env{}, fmt.Errorf("no environment at %s (run `fieldlog-setup up env` first): %w", env.Dir, err)
	}
	return env, nil
}

// firstLine trims command output down to its first line for use in one-line
// failure summaries.
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
