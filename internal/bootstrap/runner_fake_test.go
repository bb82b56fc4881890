package bootstrap

import (
	"fmt"
	"strings"
)

// fakeRunner is a scriptable Runner for tests. Commands are matched against
// their joined "name arg arg..." form; unmatched commands succeed with empty
// output so tests only script what they care about.
type fakeRunner struct {
	paths   map[string]string                        // LookPath results; absent names are "not found"
	handler func(name string, args []string) (out []byte, err error, handled bool)
	calls   []string // every Run/RunAttached invocation, joined
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{paths: map[string]string{}}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, call)
	if f.handler != nil {
		if out, err, handled := f.handler(name, args); handled {
			return out, err
		}
	}
	return nil, nil
}

func (f *fakeRunner) RunAttached(name string, args ...string) error {
	_, err := f.Run(name, args...)
	return err
}

// callsContaining returns the recorded calls that contain the substring.
func (f *fakeRunner) callsContaining(sub string) []string {
	var matched []string
	for _, call := range f.calls {
		if strings.Contains(call, sub) {
			matched = append(matched, call)
		}
	}
	return matched
}
