package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suganuamtec/fieldlog/internal/state"
)

// writeAppDir lays out a minimal FieldLog application directory: the
// dependency manifest and the finalization script.
func writeAppDir(t *testing.T) string {
	t.Helper()
	appDir := t.TempDir()
	manifest := "# FieldLog dependencies\nstreamlit>=1.30\npandas\nPySide6>=6.5.0,<6.9\n"
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "requirements.txt"), []byte(manifest), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "install.py"), []byte("# finalizer\n"), 0644))
	return appDir
}

// happyRunner scripts a machine where python3 is present, venv works, and
// every pip install succeeds.
func happyRunner(t *testing.T) *fakeRunner {
	t.Helper()
	runner := venvCreatingRunner(t)
	runner.paths["python3"] = "/usr/bin/python3"
	base := runner.handler
	runner.handler = func(name string, args []string) ([]byte, error, bool) {
		if out, err, handled := base(name, args); handled {
			return out, err, handled
		}
		if len(args) == 1 && args[0] == "--version" {
			return []byte("Python 3.11.4\n"), nil, true
		}
		return nil, nil, true
	}
	return runner
}

func newTestPipeline(runner Runner, appDir string, t *testing.T) *Pipeline {
	t.Helper()
	return New(runner, Options{AppDir: appDir, Profile: linuxProfile(t)})
}

// TestPipeline_FreshMachine is the end-to-end happy path: no env yet,
// runtime present, everything installable. The run must exit clean, leave
// the env directory behind, and invoke the finalizer exactly once.
func TestPipeline_FreshMachine(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)

	err := newTestPipeline(runner, appDir, t).Run()
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(appDir, ".venv"))
	assert.FileExists(t, state.DefaultPath(appDir))
	assert.Len(t, runner.callsContaining("install.py"), 1, "finalizer must run exactly once")

	st := state.Load(state.DefaultPath(appDir))
	assert.Equal(t, "python3", st.Runtime.Command)
	assert.Equal(t, "PySide6", st.Deps.GUIAlternative)
	assert.True(t, st.Finalized)
}

// TestPipeline_SecondRunIsIdempotent verifies the spec'd double-run
// property: the second run reuses the env and, with an unchanged manifest,
// skips the pip step entirely.
func TestPipeline_SecondRunIsIdempotent(t *testing.T) {
	appDir := writeAppDir(t)
	require.NoError(t, newTestPipeline(happyRunner(t), appDir, t).Run())

	second := happyRunner(t)
	require.NoError(t, newTestPipeline(second, appDir, t).Run())

	assert.Empty(t, second.callsContaining("-m venv"), "env must be reused")
	assert.Empty(t, second.callsContaining("pip install"), "unchanged manifest must skip installs")
}

// TestPipeline_ChangedManifestReinstalls verifies that editing
// requirements.txt invalidates the recorded hash and re-runs pip.
func TestPipeline_ChangedManifestReinstalls(t *testing.T) {
	appDir := writeAppDir(t)
	require.NoError(t, newTestPipeline(happyRunner(t), appDir, t).Run())

	manifestPath := filepath.Join(appDir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("pandas\nnumpy\nPySide6>=6.5.0,<6.9\n"), 0644))

	second := happyRunner(t)
	require.NoError(t, newTestPipeline(second, appDir, t).Run())
	assert.NotEmpty(t, second.callsContaining("pip install"))
}

// TestPipeline_NoRuntime verifies the spec'd failure scenario: no candidate
// on the search path means a fatal error before anything touches the disk.
func TestPipeline_NoRuntime(t *testing.T) {
	appDir := writeAppDir(t)
	runner := newFakeRunner() // empty PATH

	err := newTestPipeline(runner, appDir, t).Run()
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, KindRuntimeNotFound, f.Kind)
	assert.NoDirExists(t, filepath.Join(appDir, ".venv"), "no env may be created without a runtime")
	assert.NoFileExists(t, state.DefaultPath(appDir))
}

// TestPipeline_DeletedEnvIsRecreated verifies that removing the env between
// runs triggers recreation and a full reinstall rather than a failure.
func TestPipeline_DeletedEnvIsRecreated(t *testing.T) {
	appDir := writeAppDir(t)
	require.NoError(t, newTestPipeline(happyRunner(t), appDir, t).Run())
	require.NoError(t, os.RemoveAll(filepath.Join(appDir, ".venv")))

	second := happyRunner(t)
	require.NoError(t, newTestPipeline(second, appDir, t).Run())

	assert.DirExists(t, filepath.Join(appDir, ".venv"))
	assert.NotEmpty(t, second.callsContaining("-m venv"))
	assert.NotEmpty(t, second.callsContaining("pip install"), "a fresh env needs a full install even with an unchanged manifest")
}

// TestPipeline_CapabilityFailureStopsBeforeProvisioning verifies ordering:
// a missing capability aborts before any env is created.
func TestPipeline_CapabilityFailureStopsBeforeProvisioning(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)
	inner := runner.handler
	runner.handler = func(name string, args []string) ([]byte, error, bool) {
		if len(args) == 2 && args[0] == "-c" && strings.Contains(args[1], "tkinter") {
			return []byte("ModuleNotFoundError"), errors.New("exit status 1"), true
		}
		return inner(name, args)
	}

	err := newTestPipeline(runner, appDir, t).Run()
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, KindCapabilityMissing, f.Kind)
	assert.NoDirExists(t, filepath.Join(appDir, ".venv"))
}

// TestPipeline_DependencyFailureSkipsFinalizer verifies that a failed
// install aborts before install.py runs.
func TestPipeline_DependencyFailureSkipsFinalizer(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)
	inner := runner.handler
	runner.handler = func(name string, args []string) ([]byte, error, bool) {
		if strings.Contains(strings.Join(args, " "), "pip install") {
			return []byte("ERROR: network unreachable"), errors.New("exit status 1"), true
		}
		return inner(name, args)
	}

	err := newTestPipeline(runner, appDir, t).Run()
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, KindDependencyInstallFail, f.Kind)
	assert.Empty(t, runner.callsContaining("install.py"))
}

// TestPipeline_FinalizerFailureIsWarning verifies the resolved policy for
// the finalization step: a failing install.py does not fail the run.
func TestPipeline_FinalizerFailureIsWarning(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)
	inner := runner.handler
	runner.handler = func(name string, args []string) ([]byte, error, bool) {
		if len(args) > 0 && strings.Contains(args[0], "install.py") {
			return []byte("Traceback ..."), errors.New("exit status 1"), true
		}
		return inner(name, args)
	}

	err := newTestPipeline(runner, appDir, t).Run()
	require.NoError(t, err, "finalizer failure must not fail the pipeline")

	st := state.Load(state.DefaultPath(appDir))
	assert.False(t, st.Finalized)
}

// TestPipeline_SkipFinalize verifies --skip-finalize stops after installs.
func TestPipeline_SkipFinalize(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)

	p := New(runner, Options{AppDir: appDir, Profile: linuxProfile(t), SkipFinalize: true})
	require.NoError(t, p.Run())
	assert.Empty(t, runner.callsContaining("install.py"))
}

// TestPipeline_QtEntriesNotInstalledTwice verifies the manifest's own Qt
// line is routed through the alternatives path, not the regular install.
func TestPipeline_QtEntriesNotInstalledTwice(t *testing.T) {
	appDir := writeAppDir(t)
	runner := happyRunner(t)

	require.NoError(t, newTestPipeline(runner, appDir, t).Run())

	regular := runner.callsContaining("streamlit")
	require.Len(t, regular, 1)
	assert.NotContains(t, regular[0], "PySide6", "Qt binding must not ride along with the regular install")
	assert.Len(t, runner.callsContaining("PySide6"), 1, "Qt binding installed once via the alternatives path")
}
