// Package constants defines shared paths, file names and markers.
package constants

const (
	// OptionsFile is the project-local options file read by the config loader.
	OptionsFile = "symhook.yaml"

	// EnvPrefix prefixes every environment override understood by symhook.
	EnvPrefix = "SYMHOOK_"

	// BuildScriptFile is the Gradle script patched inside the Gradle project.
	BuildScriptFile = "build.gradle"

	// PropertiesFile holds credentials and project settings for the upload tool.
	PropertiesFile = "sentry.properties"

	// PropertiesEnvVar points the upload tool at PropertiesFile.
	PropertiesEnvVar = "SENTRY_PROPERTIES"

	// ProjectVersionFile is where Unity records the editor version of a project.
	ProjectVersionFile = "ProjectSettings/ProjectVersion.txt"

	// LogsDir is the Unity project directory that receives upload logs.
	LogsDir = "Logs"

	// UploadLogPrefix names the per-build upload log under LogsDir.
	UploadLogPrefix = "sentry-symbols-upload"

	// ExportSymbolsDir is the directory inside an exported Gradle project that
	// receives copied symbol files.
	ExportSymbolsDir = "symbols"
)

// Build output layouts, relative to the Unity project root. The new layout
// roots are suffixed with the platform directory name (e.g. Android).
const (
	RelativeBuildOutputPathOld = "Temp/StagingArea/symbols"
	RelativeGradlePathOld      = "Temp/gradleOut"
	RelativeBuildOutputPathNew = "Library/Bee/artifacts"
	RelativePlatformPathNew    = "Library/Bee"
)

// Upload tool command line.
const (
	UploadCommand      = "upload-dif"
	MappingFlag        = "--il2cpp-mapping"
	IncludeSourcesFlag = "--include-sources"

	// ExportRootArg is the Groovy expression for the exported project root.
	ExportRootArg = "project.rootDir"
)

// Markers delimiting the autogenerated block in the Gradle script.
const (
	BlockStartMarker = "// Autogenerated Sentry symbol upload task [start]"
	BlockEndMarker   = "// Autogenerated Sentry symbol upload task [end]"
)
