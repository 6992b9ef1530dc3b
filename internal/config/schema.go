// Package config loads the options snapshot that drives symbol upload.
package config

// SchemaVersion is the options file schema version.
const SchemaVersion = "1"

// Options is the flat configuration snapshot consumed by the upload core.
// It is read from symhook.yaml in the Unity project root and may be
// overridden by environment variables and command-line flags.
type Options struct {
	Version string `yaml:"version"`

	// UploadSymbols enables the upload hook. When false, any previously
	// installed hook is removed.
	UploadSymbols bool `yaml:"upload_symbols" env:"SYMHOOK_UPLOAD_SYMBOLS"`
	// UploadSources bundles source files with the debug symbols.
	UploadSources bool `yaml:"upload_sources" env:"SYMHOOK_UPLOAD_SOURCES"`

	ScriptingBackend string `yaml:"scripting_backend" env:"SYMHOOK_SCRIPTING_BACKEND"`
	Exporting        bool   `yaml:"exporting" env:"SYMHOOK_EXPORTING"`
	Platform         string `yaml:"platform" env:"SYMHOOK_PLATFORM"`

	// UnityVersion overrides the version read from ProjectVersion.txt.
	UnityVersion string `yaml:"unity_version,omitempty" env:"SYMHOOK_UNITY_VERSION"`
	// GradleProject overrides the default Gradle project location.
	GradleProject string `yaml:"gradle_project,omitempty" env:"SYMHOOK_GRADLE_PROJECT"`
	// CLIPath is the upload tool executable.
	CLIPath   string   `yaml:"cli_path,omitempty" env:"SYMHOOK_CLI_PATH"`
	ExtraArgs []string `yaml:"extra_args,omitempty" env:"SYMHOOK_EXTRA_ARGS"`

	Sentry SentryConfig `yaml:"sentry"`

	LogLevel string `yaml:"log_level" env:"SYMHOOK_LOG_LEVEL"`
}

// SentryConfig holds the values written to sentry.properties. The env names
// match the ones the upload tool itself understands.
type SentryConfig struct {
	URL       string `yaml:"url,omitempty" json:"url,omitempty" env:"SENTRY_URL"`
	Org       string `yaml:"org,omitempty" json:"org,omitempty" env:"SENTRY_ORG"`
	Project   string `yaml:"project,omitempty" json:"project,omitempty" env:"SENTRY_PROJECT"`
	AuthToken string `yaml:"auth_token,omitempty" json:"auth_token,omitempty" env:"SENTRY_AUTH_TOKEN"`
}

// DefaultOptions returns the options used when no file is present.
func DefaultOptions() *Options {
	return &Options{
		Version:          SchemaVersion,
		UploadSymbols:    true,
		ScriptingBackend: "il2cpp",
		Platform:         "Android",
		LogLevel:         "info",
	}
}

// Redacted returns a copy safe to print.
func (o *Options) Redacted() *Options {
	c := *o
	c.ExtraArgs = append([]string(nil), o.ExtraArgs...)
	if c.Sentry.AuthToken != "" {
		c.Sentry.AuthToken = "<redacted>"
	}
	return &c
}
