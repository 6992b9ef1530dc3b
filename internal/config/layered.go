package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/symhook/symhook/internal/safe"
)

// Layer represents a configuration layer source.
type Layer string

const (
	// LayerDefaults represents default configuration values.
	LayerDefaults Layer = "defaults"

	// LayerFile represents configuration from symhook.yaml.
	LayerFile Layer = "file"

	// LayerEnv represents configuration from environment variables.
	LayerEnv Layer = "env"

	// LayerFlags represents configuration from command-line flags.
	LayerFlags Layer = "flags"
)

// LayeredLoader provides layered configuration loading.
// Configuration is loaded in the following order:
// 1. Defaults - DefaultOptions()
// 2. File - symhook.yaml (missing file is not an error)
// 3. Environment - SYMHOOK_* and SENTRY_* variables
// 4. Flags - flags explicitly set on the command line
//
// Each layer overrides values from previous layers.
type LayeredLoader struct {
	enabledLayers map[Layer]bool
	flags         *pflag.FlagSet
}

// NewLayeredLoader creates a new layered configuration loader.
// The flags layer is enabled by WithFlags.
func NewLayeredLoader() *LayeredLoader {
	return &LayeredLoader{
		enabledLayers: map[Layer]bool{
			LayerDefaults: true,
			LayerFile:     true,
			LayerEnv:      true,
			LayerFlags:    false,
		},
	}
}

// DisableLayer disables a specific configuration layer.
func (l *LayeredLoader) DisableLayer(layer Layer) {
	l.enabledLayers[layer] = false
}

// WithFlags enables the flags layer backed by fs.
func (l *LayeredLoader) WithFlags(fs *pflag.FlagSet) *LayeredLoader {
	l.flags = fs
	l.enabledLayers[LayerFlags] = fs != nil
	return l
}

// Load loads the options with layered precedence.
func (l *LayeredLoader) Load(configPath string) (*Options, error) {
	var cfg *Options

	// Layer 1: Defaults
	if l.enabledLayers[LayerDefaults] {
		cfg = DefaultOptions()
	} else {
		cfg = &Options{}
	}

	// Layer 2: File
	if l.enabledLayers[LayerFile] && configPath != "" {
		if err := mergeFromFile(cfg, configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load options from file: %w", err)
			}
		}
	}

	// Layer 3: Environment
	if l.enabledLayers[LayerEnv] {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to load options from environment: %w", err)
		}
	}

	// Layer 4: Flags
	if l.enabledLayers[LayerFlags] && l.flags != nil {
		if err := ApplyFlags(cfg, l.flags); err != nil {
			return nil, fmt.Errorf("failed to apply flags: %w", err)
		}
	}

	return cfg, nil
}

// mergeFromFile loads configuration from a YAML file and merges it into cfg.
func mergeFromFile(cfg *Options, filePath string) error {
	data, err := safe.ReadFile(filePath, nil)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
