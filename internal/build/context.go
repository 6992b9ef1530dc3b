// Package build describes the build-time context handed to symhook by the
// Unity build pipeline.
package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/unityversion"
)

// Backend is the Unity scripting backend.
type Backend string

const (
	// BackendIL2CPP compiles scripts ahead of time into native code that
	// carries debug symbols.
	BackendIL2CPP Backend = "il2cpp"
	// BackendMono runs scripts on the managed interpreter/JIT.
	BackendMono Backend = "mono"
)

// ParseBackend parses a backend name, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendIL2CPP:
		return BackendIL2CPP, nil
	case BackendMono:
		return BackendMono, nil
	}
	return "", fmt.Errorf("unknown scripting backend %q (want il2cpp or mono)", s)
}

// IsAOT reports whether the backend produces ahead-of-time compiled binaries.
func (b Backend) IsAOT() bool {
	return b == BackendIL2CPP
}

// Platform is a build target with native symbols.
type Platform string

// PlatformAndroid is the only platform whose Gradle build symhook patches.
const PlatformAndroid Platform = "Android"

// ParsePlatform parses a platform name, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(PlatformAndroid)) {
		return PlatformAndroid, nil
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// NativeLibraryExt returns the file extension of native libraries on p.
func (p Platform) NativeLibraryExt() string {
	return ".so"
}

// CLIOptions configures the upload-tool invocation.
type CLIOptions struct {
	UploadSources bool
	ExtraArgs     []string
}

// UploadContext is constructed once per build and never mutated.
type UploadContext struct {
	// ProjectRoot is the Unity project directory.
	ProjectRoot string
	// GradleProject is the generated (or exported) Gradle project directory.
	GradleProject string
	// ScriptPath overrides GradleProject/build.gradle when set.
	ScriptPath string

	Backend   Backend
	Exporting bool
	Platform  Platform

	// EngineVersion supplies the running editor version.
	EngineVersion unityversion.Provider

	CLI *CLIOptions
}

// BuildScript returns the Gradle script the upload block is written to.
func (c UploadContext) BuildScript() string {
	if c.ScriptPath != "" {
		return c.ScriptPath
	}
	return filepath.Join(c.GradleProject, constants.BuildScriptFile)
}

// ExportSymbolsRoot returns the directory symbols are copied to in export mode.
func (c UploadContext) ExportSymbolsRoot() string {
	return filepath.Join(c.GradleProject, constants.ExportSymbolsDir)
}

// LogsDir returns the project directory that receives upload logs.
func (c UploadContext) LogsDir() string {
	return filepath.Join(c.ProjectRoot, constants.LogsDir)
}

// TargetPlatform returns the build platform, defaulting to Android.
func (c UploadContext) TargetPlatform() Platform {
	if c.Platform == "" {
		return PlatformAndroid
	}
	return c.Platform
}

// UploadSources reports whether sources should be bundled with symbols.
func (c UploadContext) UploadSources() bool {
	return c.CLI != nil && c.CLI.UploadSources
}

// ExtraArgs returns additional upload-tool arguments, if any.
func (c UploadContext) ExtraArgs() []string {
	if c.CLI == nil {
		return nil
	}
	return c.CLI.ExtraArgs
}

// Validate checks the fields every consumer relies on.
func (c UploadContext) Validate() error {
	if c.ProjectRoot == "" {
		return fmt.Errorf("project root is required")
	}
	if c.GradleProject == "" && c.ScriptPath == "" {
		return fmt.Errorf("gradle project or build script path is required")
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if c.EngineVersion == nil {
		return fmt.Errorf("engine version provider is required")
	}
	return nil
}

// ToSlash converts Windows separators to forward slashes. Gradle does not
// accept backslashes in paths.
func ToSlash(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
