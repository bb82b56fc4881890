// Package manifest reads the pip requirements file that ships next to the
// FieldLog application. Only the subset of the requirements format the
// project actually uses is understood: one requirement per line, optional
// version constraints, comments, and blank lines. Anything fancier
// (editable installs, -r includes) is passed through to pip untouched.
package manifest

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileName is the dependency manifest expected in the application directory.
const FileName = "requirements.txt"

// Requirement is one installable entry of the manifest.
type Requirement struct {
	Name string // bare distribution name, e.g. "streamlit"
	Spec string // full requirement line as handed to pip, e.g. "streamlit>=1.30"
}

// Load reads and parses the manifest at path.
func Load(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads requirements from r, skipping blank lines and comments.
// Inline comments ("pkg>=1.0  # why") are stripped the way pip strips them.
func Parse(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		reqs = append(reqs, Requirement{Name: distName(line), Spec: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan manifest: %w", err)
	}
	return reqs, nil
}

// Split partitions requirements into the regular set and the entries covered
// by an alternatives group (matched case-insensitively by distribution name).
// FieldLog's manifest lists its Qt binding like any other dependency, but the
// binding is installed separately with fallback logic, so it must not also be
// installed verbatim.
func Split(reqs []Requirement, alternativeNames []string) (regular, alternatives []Requirement) {
	alt := make(map[string]bool, len(alternativeNames))
	for _, name := range alternativeNames {
		alt[strings.ToLower(name)] = true
	}
	for _, req := range reqs {
		if alt[strings.ToLower(req.Name)] {
			alternatives = append(alternatives, req)
		} else {
			regular = append(regular, req)
		}
	}
	return regular, alternatives
}

// Specs returns the pip arguments for a set of requirements.
func Specs(reqs []Requirement) []string {
	specs := make([]string, len(reqs))
	for i, req := range reqs {
		specs[i] = req.Spec
	}
	return specs
}

// Hash returns the hex SHA-256 of the manifest file bytes. The state file
// stores this so an unchanged manifest skips the install step on re-runs.
func Hash(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// distName extracts the bare distribution name from a requirement line by
// cutting at the first constraint, extras, or environment-marker character.
func distName(spec string) string {
	for i, r := range spec {
		switch r {
		case '<', '>', '=', '!', '~', ';', '[', ' ':
			return strings.TrimSpace(spec[:i])
		}
	}
	return spec
}
