package bootstrap

import (
	"fmt"

	"github.com/suganuamtec/fieldlog/internal/config"
	"github.com/suganuamtec/fieldlog/internal/logger"
)

// CheckCapabilities verifies that each of the profile's required modules can
// be imported by the discovered interpreter. The probe is a plain
// `python -c "import <module>"`; stderr of a failed import is surfaced only
// at debug level since the remediation command is what the user needs.
//
// The check runs before any disk writes so a missing system package is
// reported without leaving a half-provisioned environment behind.
func CheckCapabilities(r Runner, py Interpreter, caps []config.Capability) error {
	for _, cap := range caps {
		out, err := r.Run(py.Path, "-c", "import "+cap.Module)
		if err != nil {
			logger.Debug("[DEBUG] import %s failed: %v\nOutput: %s\n", cap.Module, err, out)
			return &Failure{
				Kind:   KindCapabilityMissing,
				Detail: fmt.Sprintf("%s cannot import %q (needed for %s)", py.Command, cap.Module, cap.Reason),
				Remedy: cap.Remedy,
			}
		}
		logger.Debug("[DEBUG] Capability %s present\n", cap.Module)
	}
	return nil
}
