// Package errors provides the error taxonomy and cleanup helpers used by symhook.
package errors

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog"
)

var (
	// ErrFileNotFound is returned when the build script or upload tool is absent.
	ErrFileNotFound = fmt.Errorf("file not found: %w", fs.ErrNotExist)

	// ErrDirectoryNotFound is returned when a required symbol directory is absent.
	ErrDirectoryNotFound = fmt.Errorf("directory not found: %w", fs.ErrNotExist)
)

// NotFoundError records which path was missing. It unwraps to one of the
// sentinel errors above, so callers can match with errors.Is.
type NotFoundError struct {
	Kind error
	Path string
	Msg  string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Path)
}

// Unwrap returns the sentinel kind.
func (e *NotFoundError) Unwrap() error {
	return e.Kind
}

// FileNotFound builds a NotFoundError of kind ErrFileNotFound.
func FileNotFound(path, msg string) error {
	return &NotFoundError{Kind: ErrFileNotFound, Path: path, Msg: msg}
}

// DirectoryNotFound builds a NotFoundError of kind ErrDirectoryNotFound.
func DirectoryNotFound(path, msg string) error {
	return &NotFoundError{Kind: ErrDirectoryNotFound, Path: path, Msg: msg}
}

// DeferClose properly closes an io.Closer with logging.
// Use this in defer statements to avoid suppressing close errors.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}

// Must panics if error is not nil.
// Use only for initialization code where failure should halt the program.
func Must(err error, msg string) {
	if err != nil {
		panic(fmt.Sprintf("%s: %v", msg, err))
	}
}
