package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/symhook/symhook/internal/build"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// Validate validates Options.
func (o *Options) Validate() error {
	var errors []ValidationError

	if o.Version != "" && o.Version != SchemaVersion {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported schema version %q", o.Version),
		})
	}

	if _, err := build.ParseBackend(o.ScriptingBackend); err != nil {
		errors = append(errors, ValidationError{
			Field:   "scripting_backend",
			Message: "scripting backend must be 'il2cpp' or 'mono'",
		})
	}

	if o.Platform != "" {
		if _, err := build.ParsePlatform(o.Platform); err != nil {
			errors = append(errors, ValidationError{
				Field:   "platform",
				Message: fmt.Sprintf("unsupported platform %q", o.Platform),
			})
		}
	}

	if o.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(o.LogLevel)); err != nil {
			errors = append(errors, ValidationError{
				Field:   "log_level",
				Message: fmt.Sprintf("unknown log level %q", o.LogLevel),
			})
		}
	}

	if o.UploadSymbols && o.CLIPath == "" {
		errors = append(errors, ValidationError{
			Field:   "cli_path",
			Message: "upload tool path is required when uploading symbols",
		})
	}

	if o.Exporting && o.GradleProject == "" {
		errors = append(errors, ValidationError{
			Field:   "gradle_project",
			Message: "gradle project path is required when exporting",
		})
	}

	for i, arg := range o.ExtraArgs {
		if strings.TrimSpace(arg) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("extra_args[%d]", i),
				Message: "argument must not be empty",
			})
		}
	}

	if len(errors) > 0 {
		return &MultiValidationError{Errors: errors}
	}
	return nil
}
