package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# FieldLog dependencies",
		"",
		"streamlit>=1.30",
		"pandas",
		"PySide6>=6.5.0,<6.9",
		"  openpyxl==3.1.2   # xlsx export",
		"pillow[avif]>=10",
		"",
	}, "\n")

	reqs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 5, "comments and blank lines are skipped")

	assert.Equal(t, Requirement{Name: "streamlit", Spec: "streamlit>=1.30"}, reqs[0])
	assert.Equal(t, Requirement{Name: "pandas", Spec: "pandas"}, reqs[1])
	assert.Equal(t, Requirement{Name: "PySide6", Spec: "PySide6>=6.5.0,<6.9"}, reqs[2])
	assert.Equal(t, Requirement{Name: "openpyxl", Spec: "openpyxl==3.1.2"}, reqs[3], "inline comment stripped")
	assert.Equal(t, "pillow", reqs[4].Name, "extras do not leak into the name")
}

func TestSplit(t *testing.T) {
	reqs := []Requirement{
		{Name: "streamlit", Spec: "streamlit>=1.30"},
		{Name: "pyside6", Spec: "pyside6>=6.5"}, // case differs from the alternative name
		{Name: "pandas", Spec: "pandas"},
		{Name: "PyQt5", Spec: "PyQt5>=5.15"},
	}

	regular, alts := Split(reqs, []string{"PySide6", "PyQt5"})
	assert.Equal(t, []string{"streamlit>=1.30", "pandas"}, Specs(regular))
	assert.Equal(t, []string{"pyside6>=6.5", "PyQt5>=5.15"}, Specs(alts))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "requirements.txt"))
	assert.Error(t, err)
}

func TestHash_TracksContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("pandas\n"), 0644))

	first, err := Hash(path)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	again, err := Hash(path)
	require.NoError(t, err)
	assert.Equal(t, first, again, "hash is stable for unchanged content")

	require.NoError(t, os.WriteFile(path, []byte("pandas\nnumpy\n"), 0644))
	changed, err := Hash(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
