package config

import (
	"fmt"
	"runtime"
)

// Built-in profiles for the three supported platforms. These mirror what the
// retired installer scripts hardcoded: candidate interpreter order, the
// package-manager remediation one-liners, the capability check list (absent
// on Windows, where the python.org installer bundles Tk), and the env
// interpreter subpath.
var builtinProfiles = map[string]Profile{
	"linux": {
		OS: "linux",
		RuntimeCandidates: []RuntimeCandidate{
			{Command: "python3", Args: []string{"--version"}},
			{Command: "python", Args: []string{"--version"}},
		},
		RuntimeRemedy: "sudo apt-get install -y python3 python3-venv python3-pip",
		Capabilities: []Capability{
			{
				Module: "venv",
				Reason: "creating the isolated environment",
				Remedy: "sudo apt-get install -y python3-venv",
			},
			{
				Module: "tkinter",
				Reason: "file dialogs and the missing-dependency notice",
				Remedy: "sudo apt-get install -y python3-tk",
			},
		},
		EnvDir:         ".venv",
		EnvPython:      []string{"bin", "python"},
		FinalizeScript: "install.py",
		FinalizeArgs:   []string{"--skip-qt"},
		GUIAlternatives: []Alternative{
			{Name: "PySide6", Spec: "PySide6>=6.5.0,<6.9"},
			{Name: "PyQt5", Spec: "PyQt5>=5.15"},
		},
		ManualLaunch: ".venv/bin/python launcher.py",
	},
	"darwin": {
		OS: "darwin",
		RuntimeCandidates: []RuntimeCandidate{
			{Command: "python3", Args: []string{"--version"}},
			{Command: "python", Args: []string{"--version"}},
		},
		RuntimeRemedy: "brew install python3   (or download from https://www.python.org/downloads/)",
		Capabilities: []Capability{
			{
				Module: "tkinter",
				Reason: "file dialogs and the missing-dependency notice",
				Remedy: "brew install python-tk",
			},
		},
		EnvDir:         ".venv",
		EnvPython:      []string{"bin", "python"},
		FinalizeScript: "install.py",
		FinalizeArgs:   []string{"--skip-qt"},
		SupportsDMG:    true,
		GUIAlternatives: []Alternative{
			{Name: "PySide6", Spec: "PySide6>=6.5.0,<6.9"},
			{Name: "PyQt5", Spec: "PyQt5>=5.15"},
		},
		ManualLaunch: ".venv/bin/python launcher.py",
	},
	"windows": {
		OS: "windows",
		RuntimeCandidates: []RuntimeCandidate{
			// The py launcher is the canonical entry point on Windows and
			// resolves the newest installed CPython 3.
			{Command: "py", Args: []string{"-3", "--version"}},
			{Command: "python", Args: []string{"--version"}},
			{Command: "python3", Args: []string{"--version"}},
		},
		RuntimeRemedy:  "Download Python from https://www.python.org/downloads/ and tick \"Add python.exe to PATH\" during install.",
		EnvDir:         ".venv",
		EnvPython:      []string{"Scripts", "python.exe"},
		FinalizeScript: "install.py",
		FinalizeArgs:   []string{"--skip-qt"},
		GUIAlternatives: []Alternative{
			{Name: "PySide6", Spec: "PySide6>=6.5.0,<6.9"},
			{Name: "PyQt5", Spec: "PyQt5>=5.15"},
		},
		ManualLaunch: `.venv\Scripts\python.exe launcher.py`,
	},
}

// ProfileFor returns the built-in profile for the given GOOS value.
// An unsupported OS is an error rather than a best-effort guess; the old
// scripts simply did not exist on other platforms.
func ProfileFor(goos string) (Profile, error) {
	p, ok := builtinProfiles[goos]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported platform %q (supported: linux, darwin, windows)", goos)
	}
	return p, nil
}

// CurrentProfile returns the profile for the host platform.
func CurrentProfile() (Profile, error) {
	return ProfileFor(runtime.GOOS)
}
