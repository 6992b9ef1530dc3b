package unityversion

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/safe"
)

// Provider supplies the version of the Unity editor driving the build.
type Provider interface {
	EngineVersion() (string, error)
}

// Static is a Provider that always returns the same version.
type Static string

// EngineVersion implements Provider.
func (s Static) EngineVersion() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", fmt.Errorf("engine version is empty")
	}
	return string(s), nil
}

// projectVersion models ProjectSettings/ProjectVersion.txt.
type projectVersion struct {
	EditorVersion             string `yaml:"m_EditorVersion"`
	EditorVersionWithRevision string `yaml:"m_EditorVersionWithRevision"`
}

// ProjectVersionFile reads the editor version recorded in a Unity project.
type ProjectVersionFile struct {
	ProjectRoot string
}

// Path returns the location of ProjectVersion.txt.
func (p ProjectVersionFile) Path() string {
	return filepath.Join(p.ProjectRoot, filepath.FromSlash(constants.ProjectVersionFile))
}

// EngineVersion implements Provider.
func (p ProjectVersionFile) EngineVersion() (string, error) {
	data, err := safe.ReadFile(p.Path(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to read project version: %w", err)
	}

	var pv projectVersion
	if err := yaml.Unmarshal(data, &pv); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", p.Path(), err)
	}
	if pv.EditorVersion == "" {
		return "", fmt.Errorf("m_EditorVersion missing from %s", p.Path())
	}
	return pv.EditorVersion, nil
}
