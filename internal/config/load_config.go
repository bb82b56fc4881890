package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// setupFile is the on-disk layout of an optional setup.yaml override.
// Each key under profiles: is a GOOS value whose fields replace the
// corresponding built-in profile fields when present.
type setupFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfile resolves the effective profile for goos.
//
// The built-in table is the baseline; if path names a readable YAML file, any
// non-zero fields of its matching profile entry override the baseline. A
// missing file is not an error (the overrides are optional, most
// installations never ship one), but an unreadable or malformed file is,
// since the user asked for it explicitly.
func LoadProfile(path, goos string) (Profile, error) {
	base, err := ProfileFor(goos)
	if err != nil {
		return Profile{}, err
	}
	if path == "" {
		return base, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return Profile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var sf setupFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return Profile{}, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	over, ok := sf.Profiles[goos]
	if !ok {
		return base, nil
	}
	return merge(base, over), nil
}

// merge overlays the non-zero fields of over onto base. Slices replace
// wholesale rather than append: an override that lists runtime candidates is
// taken as the complete ordered list, not an extension of the default one.
func merge(base, over Profile) Profile {
	if len(over.RuntimeCandidates) > 0 {
		base.RuntimeCandidates = over.RuntimeCandidates
	}
	if over.RuntimeRemedy != "" {
		base.RuntimeRemedy = over.RuntimeRemedy
	}
	if len(over.Capabilities) > 0 {
		base.Capabilities = over.Capabilities
	}
	if over.EnvDir != "" {
		base.EnvDir = over.EnvDir
	}
	if len(over.EnvPython) > 0 {
		base.EnvPython = over.EnvPython
	}
	if over.FinalizeScript != "" {
		base.FinalizeScript = over.FinalizeScript
	}
	if len(over.FinalizeArgs) > 0 {
		base.FinalizeArgs = over.FinalizeArgs
	}
	if len(over.GUIAlternatives) > 0 {
		base.GUIAlternatives = over.GUIAlternatives
	}
	if over.ManualLaunch != "" {
		base.ManualLaunch = over.ManualLaunch
	}
	return base
}
