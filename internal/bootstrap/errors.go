package bootstrap

import "fmt"

// Failure kinds, one per fatal pipeline stage. Finalization has no kind here
// because a finalizer failure is reported as a warning and never aborts.
const (
	KindRuntimeNotFound       = "RuntimeNotFound"
	KindCapabilityMissing     = "CapabilityMissing"
	KindProvisioningFailed    = "ProvisioningFailed"
	KindDependencyInstallFail = "DependencyInstallFailed"
)

// Failure is a fatal pipeline error. Besides the cause it carries the
// copy-pasteable remediation command for the current platform, so the
// top-level error report can always tell the user what to actually type.
type Failure struct {
	Kind   string // one of the Kind* constants
	Err    error  // underlying cause, may be nil for pure "not found" cases
	Detail string // one-line human summary
	Remedy string // remediation command(s); empty when none applies
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
