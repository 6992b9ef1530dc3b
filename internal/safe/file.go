package safe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultMaxFileSize is the default maximum file size for safe file operations (8MB).
// Build scripts stay far below it; symbol copies pass their own limit.
const DefaultMaxFileSize = 8 << 20

// CopyFileOptions configures the behavior of CopyFile and ReadFile.
type CopyFileOptions struct {
	// MaxSize is the maximum allowed file size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// DestPerm is the permission mode for the destination file. Zero means 0600.
	DestPerm os.FileMode
	// AllowSymlinks allows copying from symlink sources. Default is false for security.
	AllowSymlinks bool
}

func (o *CopyFileOptions) withDefaults() CopyFileOptions {
	var out CopyFileOptions
	if o != nil {
		out = *o
	}
	if out.MaxSize == 0 {
		out.MaxSize = DefaultMaxFileSize
	}
	if out.DestPerm == 0 {
		out.DestPerm = 0o600
	}
	return out
}

// statRegular validates that path is a regular file no larger than maxSize.
func statRegular(path string, opts CopyFileOptions) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !opts.AllowSymlinks {
			return nil, fmt.Errorf("file %q is a symlink, which is not allowed for security reasons", path)
		}
		info, err = os.Stat(path)
		if err != nil {
			return nil, err
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path %q is not a regular file", path)
	}

	if info.Size() > opts.MaxSize {
		return nil, fmt.Errorf("file exceeds maximum allowed size of %d bytes", opts.MaxSize)
	}
	return info, nil
}

// CopyFile copies a file from src to dst, truncating any existing destination.
// It rejects symlinks by default, validates file size, and ensures only
// regular files are copied. It returns the number of bytes written.
func CopyFile(src, dst string, opts *CopyFileOptions) (int64, error) {
	o := opts.withDefaults()
	cleanSrc := filepath.Clean(src)

	if _, err := statRegular(cleanSrc, o); err != nil {
		return 0, err
	}

	srcFile, err := os.Open(cleanSrc)
	if err != nil {
		return 0, err
	}
	defer func(srcFile *os.File) {
		_ = srcFile.Close()
	}(srcFile)

	// #nosec G304 - we have validated the file prior to this.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.DestPerm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dstFile, srcFile)
	if closeErr := dstFile.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// ReadFile reads a file with security validations.
// It rejects symlinks by default, validates file size, and ensures only
// regular files are read.
func ReadFile(path string, opts *CopyFileOptions) ([]byte, error) {
	o := opts.withDefaults()
	cleanPath := filepath.Clean(path)

	if _, err := statRegular(cleanPath, o); err != nil {
		return nil, err
	}

	return os.ReadFile(cleanPath)
}

// WriteFileAtomic replaces path with data through a temp file in the same
// directory followed by a rename, so readers never observe a partial write.
// The mode of an existing file is preserved; perm applies to new files.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return writeAtomic(path, data, perm)
}

// WriteFileAtomicPerm is WriteFileAtomic with perm applied unconditionally,
// for files that must not stay readable by others after a rewrite.
func WriteFileAtomicPerm(path string, data []byte, perm os.FileMode) error {
	return writeAtomic(path, data, perm)
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()[:8]))

	// #nosec G304 - temp file lives next to a caller-provided path.
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	// OpenFile's mode is filtered by the umask.
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
