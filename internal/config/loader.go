package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/safe"
)

// OptionsPath returns the options file location for a Unity project.
func OptionsPath(projectRoot string) string {
	return filepath.Join(projectRoot, constants.OptionsFile)
}

// SaveOptions writes opts to path. The file may hold an auth token, so it
// is created owner-readable only.
func SaveOptions(path string, opts *Options) error {
	if opts.Version == "" {
		opts.Version = SchemaVersion
	}

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := safe.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write options: %w", err)
	}
	return nil
}
