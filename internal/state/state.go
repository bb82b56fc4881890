package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/suganuamtec/fieldlog/internal/logger"
)

// FileName is the state file written next to the application directory.
const FileName = ".fieldlog-setup.json"

// RuntimeState records the interpreter that was discovered on the last run.
type RuntimeState struct {
	Command string `json:"command"` // command name as probed, e.g. "python3"
	Path    string `json:"path"`    // absolute path resolved from PATH
	Version string `json:"version"` // output of the version query, trimmed
}

// EnvState records the provisioned virtual environment.
type EnvState struct {
	Path      string `json:"path"`       // absolute path of the env directory
	CreatedAt string `json:"created_at"` // RFC3339 timestamp of creation (empty if reused from before state existed)
}

// DepsState records the last successful dependency install, enabling
// incremental runs: when the manifest hash is unchanged the pip step is
// skipped entirely.
type DepsState struct {
	ManifestSHA256 string `json:"manifest_sha256"` // hash of requirements.txt as installed
	GUIAlternative string `json:"gui_alternative"` // which Qt binding alternative won, e.g. "PySide6"
	InstalledAt    string `json:"installed_at"`    // RFC3339 timestamp
}

// State holds everything the bootstrapper remembers between runs.
type State struct {
	Runtime   RuntimeState `json:"runtime"`
	Env       EnvState     `json:"env"`
	Deps      DepsState    `json:"deps"`
	Finalized bool         `json:"finalized"` // whether install.py has completed successfully at least once
}

// DefaultPath returns the state file path for an application directory.
func DefaultPath(appDir string) string {
	return filepath.Join(appDir, FileName)
}

// Load reads the saved state from path. A missing, unreadable, or corrupt
// file yields a fresh empty state rather than an error: state only ever
// short-circuits work, so losing it costs a redundant pip run, nothing more.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{}
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Debug("[DEBUG] Ignoring corrupt state file %s: %v\n", path, err)
		return &State{}
	}
	return &st
}

// Save writes the state to path as indented JSON. Errors are logged but not
// propagated; a failed save degrades the next run to a full reinstall, which
// is always safe.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
