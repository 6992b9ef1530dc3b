// Package upload wires symbol resolution, build script patching and symbol
// copying into the hooks the Unity build pipeline calls.
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/gradle"
	"github.com/symhook/symhook/internal/symbols"
)

// Uploader drives symbol upload for one build. Paths are resolved when the
// Uploader is created, so a new one is needed for every build.
type Uploader struct {
	uc     build.UploadContext
	paths  []string
	layout symbols.Layout

	logger   zerolog.Logger
	patcher  *gradle.Patcher
	copier   *symbols.Copier
	props    *gradle.Properties
	disabled bool
}

// Option configures an Uploader.
type Option func(*uploaderConfig)

type uploaderConfig struct {
	logger   zerolog.Logger
	now      func() time.Time
	props    *gradle.Properties
	disabled bool
}

// WithLogger sets the logger used by the Uploader and its components.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *uploaderConfig) {
		c.logger = logger
	}
}

// WithClock overrides the clock used to name upload logs.
func WithClock(now func() time.Time) Option {
	return func(c *uploaderConfig) {
		c.now = now
	}
}

// WithProperties makes OnPostExport write sentry.properties next to the
// build script.
func WithProperties(p gradle.Properties) Option {
	return func(c *uploaderConfig) {
		c.props = &p
	}
}

// WithUploadDisabled makes OnPostExport remove the hook instead of
// installing it.
func WithUploadDisabled(disabled bool) Option {
	return func(c *uploaderConfig) {
		c.disabled = disabled
	}
}

// New resolves the symbol directories for uc and returns an Uploader.
func New(uc build.UploadContext, opts ...Option) (*Uploader, error) {
	cfg := uploaderConfig{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := uc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload context: %w", err)
	}

	resolver := symbols.NewResolver(cfg.logger)
	layout, err := resolver.Layout(uc)
	if err != nil {
		return nil, err
	}
	paths := resolver.Paths(uc, layout)

	return &Uploader{
		uc:       uc,
		paths:    paths,
		layout:   layout,
		logger:   cfg.logger.With().Str("component", "uploader").Logger(),
		patcher:  gradle.NewPatcher(cfg.logger, gradle.WithClock(cfg.now)),
		copier:   symbols.NewCopier(cfg.logger),
		props:    cfg.props,
		disabled: cfg.disabled,
	}, nil
}

// SymbolPaths returns the resolved symbol directories.
func (u *Uploader) SymbolPaths() []string {
	return append([]string(nil), u.paths...)
}

// Layout returns the build output layout the paths were resolved for.
func (u *Uploader) Layout() symbols.Layout {
	return u.layout
}

// Context returns the upload context the Uploader was created with.
func (u *Uploader) Context() build.UploadContext {
	return u.uc
}

// InstallUploadHook writes the upload block for toolPath into the build
// script, replacing any block from an earlier run.
func (u *Uploader) InstallUploadHook(toolPath string) error {
	script := u.uc.BuildScript()
	if err := u.patcher.Remove(script); err != nil {
		return fmt.Errorf("failed to remove previous upload task: %w", err)
	}
	if err := u.patcher.Append(script, toolPath, u.uc, u.paths); err != nil {
		return fmt.Errorf("failed to add upload task: %w", err)
	}
	return nil
}

// UninstallUploadHook removes the upload block from the build script.
func (u *Uploader) UninstallUploadHook() error {
	if err := u.patcher.Remove(u.uc.BuildScript()); err != nil {
		return fmt.Errorf("failed to remove upload task: %w", err)
	}
	return nil
}

// Installed reports whether the build script carries an upload block.
func (u *Uploader) Installed() (bool, error) {
	return u.patcher.Installed(u.uc.BuildScript())
}

// CopySymbols copies native libraries into the exported Gradle project.
// It does nothing unless the project is being exported.
func (u *Uploader) CopySymbols(ctx context.Context) (*symbols.CopyReport, error) {
	return u.copier.Copy(ctx, u.uc, u.paths, u.uc.ExportSymbolsRoot())
}

// OnPostExport runs after Unity has generated the Gradle project.
func (u *Uploader) OnPostExport(ctx context.Context, toolPath string) error {
	if u.disabled {
		u.logger.Info().Msg("Symbol upload is disabled, skipping.")
		return u.UninstallUploadHook()
	}

	if u.props != nil {
		path, err := gradle.WriteProperties(u.uc.GradleProject, *u.props)
		if err != nil {
			return err
		}
		u.logger.Debug().Str("path", path).Msg("Wrote upload tool properties.")
	}

	if err := u.InstallUploadHook(toolPath); err != nil {
		return err
	}

	if !u.uc.Exporting {
		return nil
	}

	report, err := u.CopySymbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to copy symbols: %w", err)
	}
	u.logger.Info().
		Int("files", len(report.Files)).
		Str("target", u.uc.ExportSymbolsRoot()).
		Msg("Copied symbols into the exported project.")
	return nil
}
