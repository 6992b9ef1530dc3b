package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultBuildScript is a minimal generated Gradle script.
const DefaultBuildScript = `// GENERATED BY UNITY. REMOVE THIS COMMENT TO PREVENT OVERWRITING WHEN EXPORTING AGAIN

apply plugin: 'com.android.application'

dependencies {
    implementation project(':unityLibrary')
}
`

// UnityProject is an on-disk fixture of a Unity project with a generated
// Gradle project inside it.
type UnityProject struct {
	Root          string
	GradleProject string
}

// NewUnityProject creates a project under t.TempDir() with ProjectVersion.txt
// set to editorVersion and a Gradle project containing DefaultBuildScript.
func NewUnityProject(t *testing.T, editorVersion string) *UnityProject {
	t.Helper()

	root := t.TempDir()
	p := &UnityProject{
		Root:          root,
		GradleProject: filepath.Join(root, "Library", "Bee", "Android", "Prj", "IL2CPP", "Gradle"),
	}

	p.WriteFile(t, "ProjectSettings/ProjectVersion.txt", "m_EditorVersion: "+editorVersion+"\n")
	p.WriteFile(t, "Library/Bee/Android/Prj/IL2CPP/Gradle/build.gradle", DefaultBuildScript)
	return p
}

// BuildScript returns the path of the fixture's Gradle script.
func (p *UnityProject) BuildScript() string {
	return filepath.Join(p.GradleProject, "build.gradle")
}

// Path joins a slash-separated relative path onto the project root.
func (p *UnityProject) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// Mkdir creates a directory relative to the project root.
func (p *UnityProject) Mkdir(t *testing.T, rel string) string {
	t.Helper()
	dir := p.Path(rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// WriteFile writes content to a file relative to the project root, creating
// parent directories.
func (p *UnityProject) WriteFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// NewUploadTool writes an executable stand-in for the upload tool and
// returns its path.
func NewUploadTool(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sentry-cli")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
