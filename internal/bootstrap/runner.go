package bootstrap

import (
	"os"
	"os/exec"
	"strings"

	"github.com/suganuamtec/fieldlog/internal/logger"
)

// Runner abstracts external process execution. Every step of the pipeline
// shells out to something (the system Python, venv, pip, install.py), and
// hiding exec behind this interface lets the pipeline be tested on machines
// with no Python toolchain at all.
type Runner interface {
	// LookPath resolves a command name against the ambient search path.
	LookPath(name string) (string, error)

	// Run executes a command and returns its combined stdout+stderr.
	// Used for probes and quiet installs where output only matters on failure.
	Run(name string, args ...string) ([]byte, error)

	// RunAttached executes a command with stdout/stderr wired to the
	// terminal. Used for the finalizer, whose progress output belongs to
	// the user.
	RunAttached(name string, args ...string) error
}

// execRunner is the real Runner backed by os/exec.
type execRunner struct{}

// NewRunner returns the Runner used outside of tests.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	return cmd.CombinedOutput()
}

func (execRunner) RunAttached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command (attached): %s\n", strings.Join(cmd.Args, " "))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
