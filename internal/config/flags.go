package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and the flags layer.
const (
	FlagUploadSources = "upload-sources"
	FlagBackend       = "backend"
	FlagExport        = "export"
	FlagPlatform      = "platform"
	FlagUnityVersion  = "unity-version"
	FlagGradleProject = "gradle-project"
	FlagCLIPath       = "cli-path"
	FlagExtraArg      = "extra-arg"
	FlagLogLevel      = "log-level"
)

// RegisterFlags adds the option overrides to fs. Defaults are zero values;
// only flags the user sets take part in the flags layer.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagUploadSources, false, "Include source files in the upload")
	fs.String(FlagBackend, "", "Scripting backend (il2cpp, mono)")
	fs.Bool(FlagExport, false, "The project is exported for an external Gradle build")
	fs.String(FlagPlatform, "", "Build platform (Android)")
	fs.String(FlagUnityVersion, "", "Unity editor version (default: read from ProjectSettings/ProjectVersion.txt)")
	fs.String(FlagGradleProject, "", "Gradle project directory (default: derived from the Unity version and backend)")
	fs.String(FlagCLIPath, "", "Path to the upload tool executable")
	fs.StringArray(FlagExtraArg, nil, "Extra argument passed to the upload tool (repeatable)")
}

// ApplyFlags copies every flag explicitly set on fs into cfg.
func ApplyFlags(cfg *Options, fs *pflag.FlagSet) error {
	var err error
	setString := func(name string, dst *string) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetString(name)
	}
	setBool := func(name string, dst *bool) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetBool(name)
	}

	setBool(FlagUploadSources, &cfg.UploadSources)
	setString(FlagBackend, &cfg.ScriptingBackend)
	setBool(FlagExport, &cfg.Exporting)
	setString(FlagPlatform, &cfg.Platform)
	setString(FlagUnityVersion, &cfg.UnityVersion)
	setString(FlagGradleProject, &cfg.GradleProject)
	setString(FlagCLIPath, &cfg.CLIPath)
	setString(FlagLogLevel, &cfg.LogLevel)

	if err == nil && fs.Lookup(FlagExtraArg) != nil && fs.Changed(FlagExtraArg) {
		cfg.ExtraArgs, err = fs.GetStringArray(FlagExtraArg)
	}
	return err
}
