package symbols

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/symhook/symhook/internal/build"
	symerrors "github.com/symhook/symhook/internal/errors"
	"github.com/symhook/symhook/internal/safe"
)

// MaxSymbolFileSize bounds a single copied library. Unstripped IL2CPP
// libraries are large but stay well below this.
const MaxSymbolFileSize = 4 << 30

// CopiedFile describes one symbol file copied into an exported project.
type CopiedFile struct {
	Source      string `json:"source" yaml:"source" header:"SOURCE"`
	Destination string `json:"destination" yaml:"destination" header:"DESTINATION"`
	Size        int64  `json:"size" yaml:"size" header:"SIZE"`
	Checksum    string `json:"xxh3" yaml:"xxh3" header:"XXH3"`
}

// CopyReport summarises a Copy call.
type CopyReport struct {
	Files []CopiedFile `json:"files" yaml:"files"`
	// Skipped lists search roots that did not exist.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Copier copies symbol files from the resolved roots into an exported
// Gradle project so the external build can upload them.
type Copier struct {
	logger  zerolog.Logger
	maxSize int64
}

// NewCopier creates a Copier.
func NewCopier(logger zerolog.Logger) *Copier {
	return &Copier{
		logger:  logger.With().Str("component", "copier").Logger(),
		maxSize: MaxSymbolFileSize,
	}
}

// Copy mirrors every native library found under paths into targetRoot. It is
// a no-op unless uc.Exporting is set. Roots that do not exist are skipped:
// depending on the Unity version some of them are never created.
func (c *Copier) Copy(ctx context.Context, uc build.UploadContext, paths []string, targetRoot string) (*CopyReport, error) {
	report := &CopyReport{}
	if !uc.Exporting {
		return report, nil
	}

	c.logger.Info().Str("target", targetRoot).Msg("Copying debug symbols to exported gradle project.")

	ext := uc.TargetPlatform().NativeLibraryExt()
	target := filepath.Clean(targetRoot)
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			if err != nil && !os.IsNotExist(err) {
				return report, fmt.Errorf("failed to inspect %s: %w", root, err)
			}
			c.logger.Debug().Str("path", root).Msg("Symbols directory not found, skipping.")
			report.Skipped = append(report.Skipped, root)
			continue
		}

		err = filepath.WalkDir(root, func(src string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			// The target may live under a search root; earlier copies must not
			// be picked up again.
			if d.IsDir() && filepath.Clean(src) == target {
				return fs.SkipDir
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			copied, err := c.copyOne(root, src, targetRoot)
			if err != nil {
				return err
			}
			report.Files = append(report.Files, copied)
			return nil
		})
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (c *Copier) copyOne(root, src, targetRoot string) (CopiedFile, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		return CopiedFile{}, fmt.Errorf("failed to relativize %s: %w", src, err)
	}
	dst := filepath.Join(targetRoot, rel)

	c.logger.Debug().Str("source", src).Str("destination", dst).Msg("Copying symbol file.")

	//nolint:gosec // G301: exported project directories need standard permissions
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return CopiedFile{}, fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	n, err := safe.CopyFile(src, dst, &safe.CopyFileOptions{
		MaxSize:       c.maxSize,
		DestPerm:      0o644,
		AllowSymlinks: true,
	})
	if err != nil {
		return CopiedFile{}, fmt.Errorf("failed to copy %s: %w", src, err)
	}

	sum, err := c.checksum(dst)
	if err != nil {
		return CopiedFile{}, err
	}

	return CopiedFile{
		Source:      src,
		Destination: dst,
		Size:        n,
		Checksum:    fmt.Sprintf("%016x", sum),
	}, nil
}

// checksum returns the xxh3 digest of the file at path.
func (c *Copier) checksum(path string) (uint64, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, err
	}
	defer symerrors.DeferClose(c.logger, f, "failed to close symbol file")

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return h.Sum64(), nil
}
