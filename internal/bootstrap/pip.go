package bootstrap

import (
	"fmt"
	"strings"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
)

// pip output is suppressed for routine installs; failures still surface the
// combined output at debug level and a one-line summary in the Failure.
var pipQuietArgs = []string{"--quiet", "--disable-pip-version-check"}

// EnsurePip makes sure the env's interpreter has a working pip, bootstrapping
// it via ensurepip when it does not. Some distro pythons create venvs without
// pip when python3-venv is only partially installed.
func EnsurePip(r Runner, env Env) error {
	if _, err := r.Run(env.Python, "-m", "pip", "--version"); err == nil {
		return nil
	}

	logger.Warn("[WARN] Env has no pip. Bootstrapping with ensurepip...\n")
	out, err := r.Run(env.Python, "-m", "ensurepip", "--upgrade")
	if err != nil {
		return &Failure{
			Kind:   KindProvisioningFailed,
			Err:    err,
			Detail: "ensurepip failed: " + firstLine(out),
		}
	}
	return nil
}

// InstallRequirements installs the given requirement specs into the env.
// When findLinks is non-empty the install is fully offline: pip resolves
// against the extracted wheel bundle only (--no-index).
func InstallRequirements(r Runner, env Env, specs []string, findLinks string) error {
	if len(specs) == 0 {
		return nil
	}

	args := append([]string{"-m", "pip", "install"}, pipQuietArgs...)
	if findLinks != "" {
		args = append(args, "--no-index", "--find-links", findLinks)
	}
	args = append(args, specs...)

	out, err := r.Run(env.Python, args...)
	if err != nil {
		logger.Debug("[DEBUG] pip install failed.\nOutput: %s\n", out)
		return &Failure{
			Kind:   KindDependencyInstallFail,
			Err:    err,
			Detail: "pip install failed: " + firstLine(out),
			Remedy: fmt.Sprintf("%s -m pip install %s", env.Python, strings.Join(specs, " ")),
		}
	}
	return nil
}

// InstallFirstAlternative installs the first alternative of an ordered group
// that pip accepts, returning the winning distribution name. This is the only
// retry logic in the whole installer: FieldLog's Qt binding is PySide6 when
// the platform can take it, PyQt5 otherwise.
func InstallFirstAlternative(r Runner, env Env, alts []config.Alternative, findLinks string) (string, error) {
	if len(alts) == 0 {
		return "", nil
	}

	var lastOut []byte
	var lastErr error
	for _, alt := range alts {
		args := append([]string{"-m", "pip", "install"}, pipQuietArgs...)
		if findLinks != "" {
			args = append(args, "--no-index", "--find-links", findLinks)
		}
		args = append(args, alt.Spec)

		out, err := r.Run(env.Python, args...)
		if err == nil {
			logger.Debug("[DEBUG] Alternative %s installed\n", alt.Name)
			return alt.Name, nil
		}
		logger.Warn("[WARN] %s failed to install. Trying next alternative...\n", alt.Name)
		logger.Debug("[DEBUG] pip output: %s\n", out)
		lastOut, lastErr = out, err
	}

	names := make([]string, len(alts))
	specs := make([]string, len(alts))
	for i, alt := range alts {
		names[i] = alt.Name
		specs[i] = fmt.Sprintf("%q", alt.Spec)
	}
	return "", &Failure{
		Kind:   KindDependencyInstallFail,
		Err:    lastErr,
		Detail: fmt.Sprintf("none of %s installed: %s", strings.Join(names, ", "), firstLine(lastOut)),
		Remedy: fmt.Sprintf("%s -m pip install %s", env.Python, strings.Join(specs, "   # or: ")),
	}
}
