package bootstrap

import (
	"strings"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
)

// Interpreter is a system Python that answered its version query.
type Interpreter struct {
	Command string // command name as configured, e.g. "python3"
	Path    string // absolute path resolved from the search path
	Version string // trimmed version query output, e.g. "Python 3.11.4"
}

// Discover probes the profile's runtime candidates in order and returns the
// first interpreter that both resolves on the search path and answers its
// version query. A candidate that resolves but fails the query (a broken
// shim, or the Windows Store alias that exits non-zero) is skipped the same
// as a missing one.
func Discover(r Runner, profile config.Profile) (Interpreter, error) {
	for _, cand := range profile.RuntimeCandidates {
		path, err := r.LookPath(cand.Command)
		if err != nil {
			logger.Debug("[DEBUG] Candidate %s not on PATH: %v\n", cand.Command, err)
			continue
		}

		out, err := r.Run(path, cand.Args...)
		if err != nil {
			logger.Debug("[DEBUG] Candidate %s failed version query: %v\nOutput: %s\n", cand.Command, err, out)
			continue
		}

		version := strings.TrimSpace(string(out))
		logger.Debug("[DEBUG] Selected interpreter %s (%s)\n", path, version)
		return Interpreter{Command: cand.Command, Path: path, Version: version}, nil
	}

	names := make([]string, len(profile.RuntimeCandidates))
	for i, cand := range profile.RuntimeCandidates {
		names[i] = cand.Command
	}
	return Interpreter{}, &Failure{
		Kind:   KindRuntimeNotFound,
		Detail: "no Python interpreter found (tried: " + strings.Join(names, ", ") + ")",
		Remedy: profile.RuntimeRemedy,
	}
}
