package config

// RuntimeCandidate is one interpreter command to probe during runtime
// discovery, together with the arguments of its version query.
// Candidates are tried in order; the first one that runs successfully wins.
type RuntimeCandidate struct {
	Command string   `yaml:"command"` // executable name resolved via PATH, e.g. "python3"
	Args    []string `yaml:"args"`    // version probe arguments, e.g. ["--version"] or ["-3", "--version"] for the Windows launcher
}

// Capability is one importable Python module the downstream application needs
// before the environment is worth provisioning. The probe is
// `python -c "import <Module>"`; a failed import aborts the pipeline with the
// capability's remediation command.
type Capability struct {
	Module string `yaml:"module"` // importable module name, e.g. "tkinter"
	Reason string `yaml:"reason"` // what FieldLog uses it for, shown in diagnostics
	Remedy string `yaml:"remedy"` // copy-pasteable install command for this platform
}

// Alternative is one acceptable implementation of a dependency that ships
// under several package names. Alternatives are tried in order until one
// installs; FieldLog uses this for its Qt binding (PySide6 preferred,
// PyQt5 fallback).
type Alternative struct {
	Name string `yaml:"name"` // pip distribution name, e.g. "PySide6"
	Spec string `yaml:"spec"` // full requirement spec passed to pip, e.g. "PySide6>=6.5.0,<6.9"
}

// Profile is the per-platform configuration table that parameterizes the
// single bootstrap pipeline. The previous generation of this installer was
// three near-identical platform scripts; everything that differed between
// them lives here as data.
type Profile struct {
	OS                string             `yaml:"os"`                 // GOOS value this profile serves
	RuntimeCandidates []RuntimeCandidate `yaml:"runtime_candidates"` // ordered interpreter probe list
	RuntimeRemedy     string             `yaml:"runtime_remedy"`     // printed when no candidate responds
	Capabilities      []Capability       `yaml:"capabilities"`       // required importable modules (may be empty)
	EnvDir            string             `yaml:"env_dir"`            // virtual env directory name, relative to the app dir
	EnvPython         []string           `yaml:"env_python"`         // interpreter subpath inside the env, e.g. [bin python]
	FinalizeScript    string             `yaml:"finalize_script"`    // external finalizer next to requirements.txt
	FinalizeArgs      []string           `yaml:"finalize_args"`      // flags always passed to the finalizer
	SupportsDMG       bool               `yaml:"supports_dmg"`       // whether --dmg is honored (macOS only)
	GUIAlternatives   []Alternative      `yaml:"gui_alternatives"`   // ordered Qt binding alternatives
	ManualLaunch      string             `yaml:"manual_launch"`      // documented fallback command when finalization fails
}

// EnvPythonPath returns the interpreter subpath inside the env joined with
// the platform separator handled by the caller via filepath.Join.
// Kept as a slice here so the YAML form stays portable across platforms.
func (p Profile) EnvPythonPath() []string {
	return append([]string{p.EnvDir}, p.EnvPython...)
}
