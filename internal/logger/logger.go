package logger

import (
	"strings"

	"github.com/fatih/color" // Colored console output
)

// Colorized printf-style functions for each log level. These are package-level
// variables so call sites stay as terse as fmt.Printf while the color scheme
// lives in one place.

// Info logs informational messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta. Warnings never change the
// process exit code; they flag things the user may want to fix by hand
// (for example a failed desktop-shortcut step with a working manual fallback).
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red. Fatal pipeline failures are printed
// through this before the process exits non-zero.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan when enabled, otherwise is a no-op.
// It is assigned during Init based on the --debug flag.
var Debug func(format string, a ...any)

// Step prints an installer progress line in the two-space indented style the
// original FieldLog installer used, e.g. "  Installing dependencies...".
func Step(format string, a ...any) {
	color.New(color.FgWhite).Printf("  "+format+"\n", a...)
}

// Success prints a completed step with a leading check mark,
// e.g. "  ✓ Dependencies installed".
func Success(format string, a ...any) {
	color.New(color.FgGreen).Printf("  ✓ "+format+"\n", a...)
}

// Skip prints a non-fatal caution line with a leading warning sign,
// e.g. "  ⚠  Could not create shortcut".
func Skip(format string, a ...any) {
	color.New(color.FgHiMagenta).Printf("  ⚠  "+format+"\n", a...)
}

// Banner prints a framed section header around msg, matching the terminal
// texture of the previous installer scripts.
func Banner(msg string) {
	line := strings.Repeat("=", 52)
	color.New(color.FgCyan).Printf("%s\n  %s\n%s\n", line, msg, line)
}

// Init enables or disables debug logging. When disabled, Debug is a no-op
// function rather than a nil pointer so call sites never have to check.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func init() {
	// Safe default so packages logging before cmd calls Init never hit a nil
	// function variable (tests in particular never go through cobra).
	Init(false)
}
