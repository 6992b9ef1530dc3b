package config

import (
	"fmt"
	"path/filepath"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/unityversion"
)

// VersionProvider returns the engine version source for projectRoot.
// An explicit unity_version wins over ProjectVersion.txt.
func (o *Options) VersionProvider(projectRoot string) unityversion.Provider {
	if o.UnityVersion != "" {
		return unityversion.Static(o.UnityVersion)
	}
	return unityversion.ProjectVersionFile{ProjectRoot: projectRoot}
}

// UploadContext builds the per-build context from the options snapshot.
func (o *Options) UploadContext(projectRoot string) (build.UploadContext, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return build.UploadContext{}, fmt.Errorf("failed to resolve project root: %w", err)
	}

	backend, err := build.ParseBackend(o.ScriptingBackend)
	if err != nil {
		return build.UploadContext{}, err
	}

	platform := build.PlatformAndroid
	if o.Platform != "" {
		if platform, err = build.ParsePlatform(o.Platform); err != nil {
			return build.UploadContext{}, err
		}
	}

	uc := build.UploadContext{
		ProjectRoot:   root,
		Backend:       backend,
		Exporting:     o.Exporting,
		Platform:      platform,
		EngineVersion: o.VersionProvider(root),
		CLI: &build.CLIOptions{
			UploadSources: o.UploadSources,
			ExtraArgs:     append([]string(nil), o.ExtraArgs...),
		},
	}

	switch {
	case o.GradleProject == "":
		gradle, err := DefaultGradleProject(root, platform, backend, uc.EngineVersion)
		if err != nil {
			return build.UploadContext{}, err
		}
		uc.GradleProject = gradle
	case filepath.IsAbs(o.GradleProject):
		uc.GradleProject = o.GradleProject
	default:
		uc.GradleProject = filepath.Join(root, o.GradleProject)
	}

	return uc, uc.Validate()
}

// DefaultGradleProject returns the directory Unity generates the Gradle
// project into for an in-place build.
func DefaultGradleProject(projectRoot string, platform build.Platform, backend build.Backend, version unityversion.Provider) (string, error) {
	newBackend, err := unityversion.UsesNewBuildBackend(version)
	if err != nil {
		return "", err
	}
	if !newBackend {
		return filepath.Join(projectRoot, constants.RelativeGradlePathOld), nil
	}

	flavor := "Mono2x"
	if backend.IsAOT() {
		flavor = "IL2CPP"
	}
	return filepath.Join(projectRoot, constants.RelativePlatformPathNew, string(platform), "Prj", flavor, "Gradle"), nil
}
