package main

import (
	"github.com/suganuamtec/fieldlog/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The fieldlog-setup project is the installer for the FieldLog desktop
// application. It replaces the three per-platform installer scripts that
// shipped with earlier releases (Linux shell, macOS command, Windows batch)
// with a single configuration-driven binary that:
//   - Probes an ordered list of Python interpreter commands and selects the
//     first one that answers a version query, with per-platform remediation
//     text when none is found
//   - Verifies required importable capabilities (the GUI toolkit binding and
//     friends) inside the discovered interpreter before touching the disk
//   - Creates a .venv virtual environment next to the application, or reuses
//     an existing one (runs are idempotent; a broken env is recreated)
//   - Installs the requirements.txt manifest into the env with quiet pip
//     output, trying the GUI binding alternatives (PySide6, then PyQt5) in
//     preference order until one installs
//   - Optionally installs from an offline wheel bundle (local archive or a
//     GitHub release asset) for air-gapped machines
//   - Hands off to the bundled install.py to create the desktop shortcut or
//     macOS app bundle, treating a finalizer failure as a warning since the
//     provisioned env is already usable via the documented manual command
//
// Error handling strategy:
//   - Each fatal failure kind (runtime missing, capability missing,
//     provisioning failed, dependency install failed) prints a short label,
//     a one-line cause, and copy-pasteable remediation commands, then the
//     process exits with status 1
//   - Finalization failure is reported but does not change the exit code;
//     the environment itself is the deliverable
//
// Integration points:
//   - Runs the system Python, venv, and pip as external processes and waits
//     on each synchronously; no package manager abstraction beyond the
//     remediation text
//   - Tracks a small JSON state file next to the env so unchanged manifests
//     skip the pip step on re-runs
func main() {
	cmd.Execute()
}
