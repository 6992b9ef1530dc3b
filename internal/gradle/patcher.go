package gradle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/symhook/symhook/internal/build"
	"github.com/symhook/symhook/internal/constants"
	symerrors "github.com/symhook/symhook/internal/errors"
	"github.com/symhook/symhook/internal/safe"
)

// logTimeFormat stamps per-build upload log names.
const logTimeFormat = "20060102-150405"

// Patcher inserts and removes the upload block in a Gradle build script.
type Patcher struct {
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithClock overrides the clock used to name upload logs.
func WithClock(now func() time.Time) Option {
	return func(p *Patcher) {
		p.now = now
	}
}

// NewPatcher creates a Patcher.
func NewPatcher(logger zerolog.Logger, opts ...Option) *Patcher {
	p := &Patcher{
		logger: logger.With().Str("component", "gradle").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Append adds the upload block to the end of scriptPath unless a block is
// already present. All preconditions are checked before anything is written.
func (p *Patcher) Append(scriptPath, toolPath string, uc build.UploadContext, paths []string) error {
	target, content, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	if strings.Contains(content, constants.BlockStartMarker) {
		p.logger.Debug().Str("script", scriptPath).Msg("Symbol upload has already been added in a previous build.")
		return nil
	}

	block := Block{
		Args:      UploadArgs(uc, paths),
		Exporting: uc.Exporting,
	}

	if uc.Exporting {
		block.Executable = ExportedExecutable(toolPath)
	} else {
		if !isFile(toolPath) {
			return symerrors.FileNotFound(toolPath, "failed to find the upload tool")
		}
		block.Executable = build.ToSlash(toolPath)

		for _, dir := range paths {
			if !isDir(dir) {
				return symerrors.DirectoryNotFound(dir, "failed to find the symbols directory")
			}
		}

		logsDir := uc.LogsDir()
		//nolint:gosec // G301: Logs is a regular project directory
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		name := fmt.Sprintf("%s-%s.log", constants.UploadLogPrefix, p.now().UTC().Format(logTimeFormat))
		block.LogName = constants.LogsDir + "/" + name
		block.LogFile = build.ToSlash(logsDir) + "/" + name
	}

	rendered, err := block.Render()
	if err != nil {
		return err
	}

	p.logger.Info().Str("script", scriptPath).Msg("Appending debug symbols upload task to gradle file.")

	doc, err := Parse(content)
	if err != nil {
		return err
	}
	if err := safe.WriteFileAtomic(target, []byte(doc.WithBlock(rendered)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	return nil
}

// Remove strips the upload block from scriptPath. A script without a block
// is left untouched.
func (p *Patcher) Remove(scriptPath string) error {
	p.logger.Debug().Str("script", scriptPath).Msg("Removing the upload task from the gradle project.")

	target, content, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	doc, err := Parse(content)
	if err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	if !doc.HasBlock() {
		p.logger.Debug().Msg("No previous upload task found.")
		return nil
	}

	if err := safe.WriteFileAtomic(target, []byte(doc.WithoutBlock()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	return nil
}

// Installed reports whether scriptPath currently contains an upload block.
func (p *Patcher) Installed(scriptPath string) (bool, error) {
	_, content, err := loadScript(scriptPath)
	if err != nil {
		return false, err
	}
	doc, err := Parse(content)
	if err != nil {
		return false, err
	}
	return doc.HasBlock(), nil
}

// loadScript reads the build script and returns the path writes must go to.
// A symlinked script resolves to its target so rewrites keep the link.
func loadScript(scriptPath string) (string, string, error) {
	if !isFile(scriptPath) {
		return "", "", symerrors.FileNotFound(scriptPath, "failed to find the gradle config")
	}
	target, err := filepath.EvalSymlinks(filepath.Clean(scriptPath))
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %s: %w", scriptPath, err)
	}
	data, err := safe.ReadFile(target, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", scriptPath, err)
	}
	return target, string(data), nil
}

func isFile(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	return err == nil && info.IsDir()
}
