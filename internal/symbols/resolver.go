// Package symbols locates native debug symbols produced by a Unity build and
// copies them into exported Gradle projects.
package symbols

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/constants"
	"github.com/symhook/symhook/internal/unityversion"
)

// Layout identifies where a Unity version writes its build output.
type Layout int

const (
	// LayoutOld is used before 2021.2: output lives under Temp.
	LayoutOld Layout = iota
	// LayoutNew is used from 2021.2 on: output lives under Library/Bee.
	LayoutNew
)

// String returns the string representation of the layout.
func (l Layout) String() string {
	if l == LayoutNew {
		return "library"
	}
	return "temp"
}

// Resolver computes the symbol search roots for a build.
type Resolver struct {
	logger zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{logger: logger.With().Str("component", "resolver").Logger()}
}

// Layout selects the build output layout from the engine version.
func (r *Resolver) Layout(uc build.UploadContext) (Layout, error) {
	if uc.EngineVersion == nil {
		return LayoutOld, fmt.Errorf("engine version provider is required")
	}
	newer, err := unityversion.UsesNewBuildBackend(uc.EngineVersion)
	if err != nil {
		return LayoutOld, fmt.Errorf("failed to detect build layout: %w", err)
	}
	if newer {
		return LayoutNew, nil
	}
	return LayoutOld, nil
}

// Resolve returns the directories that may hold native symbols, in upload
// order. The AOT-only build output root comes first when present. Existence is
// not checked here.
func (r *Resolver) Resolve(uc build.UploadContext) ([]string, error) {
	layout, err := r.Layout(uc)
	if err != nil {
		return nil, err
	}
	return r.Paths(uc, layout), nil
}

// Paths is Resolve for an already detected layout.
func (r *Resolver) Paths(uc build.UploadContext, layout Layout) []string {
	platform := string(uc.TargetPlatform())
	var aotRoot, commonRoot string
	switch layout {
	case LayoutNew:
		r.logger.Info().Msg("Unity version 2021.2 or newer detected. Root for symbols upload: 'Library'.")
		aotRoot = filepath.Join(uc.ProjectRoot, filepath.FromSlash(constants.RelativeBuildOutputPathNew), platform)
		commonRoot = filepath.Join(uc.ProjectRoot, filepath.FromSlash(constants.RelativePlatformPathNew), platform)
	default:
		r.logger.Info().Msg("Unity version 2021.1 or older detected. Root for symbols upload: 'Temp'.")
		aotRoot = filepath.Join(uc.ProjectRoot, filepath.FromSlash(constants.RelativeBuildOutputPathOld))
		commonRoot = filepath.Join(uc.ProjectRoot, filepath.FromSlash(constants.RelativeGradlePathOld))
	}

	paths := make([]string, 0, 2)
	if uc.Backend.IsAOT() {
		paths = append(paths, aotRoot)
	}
	paths = append(paths, commonRoot)
	return paths
}
