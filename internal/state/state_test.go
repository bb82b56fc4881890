package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	st := &State{
		Runtime: RuntimeState{Command: "python3", Path: "/usr/bin/python3", Version: "Python 3.11.4"},
		Env:     EnvState{Path: "/app/.venv", CreatedAt: "2026-08-27T10:00:00Z"},
		Deps: DepsState{
			ManifestSHA256: "abc123",
			GUIAlternative: "PyQt5",
			InstalledAt:    "2026-08-27T10:01:00Z",
		},
		Finalized: true,
	}

	Save(path, st)

	loaded := Load(path)
	assert.Equal(t, st, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	loaded := Load(filepath.Join(t.TempDir(), FileName))
	assert.Equal(t, &State{}, loaded, "missing state degrades to empty, never errors")
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	loaded := Load(path)
	assert.Equal(t, &State{}, loaded, "corrupt state degrades to empty")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/app", FileName), DefaultPath("/app"))
}
