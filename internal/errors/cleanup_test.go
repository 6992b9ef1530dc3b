package errors

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
)

type mockCloser struct {
	closeErr error
	closed   bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.closeErr
}

func TestDeferClose(t *testing.T) {
	tests := []struct {
		name       string
		closer     io.Closer
		wantLogged bool
	}{
		{
			name:       "nil closer",
			closer:     nil,
			wantLogged: false,
		},
		{
			name:       "successful close",
			closer:     &mockCloser{},
			wantLogged: false,
		},
		{
			name:       "close with error",
			closer:     &mockCloser{closeErr: errors.New("close failed")},
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			DeferClose(logger, tt.closer, "test close")

			if tt.closer != nil {
				mc := tt.closer.(*mockCloser)
				if !mc.closed {
					t.Error("Close() was not called")
				}
			}

			logged := buf.Len() > 0
			if logged != tt.wantLogged {
				t.Errorf("logged = %v, want %v", logged, tt.wantLogged)
			}
		})
	}
}

func TestNotFoundErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"file", FileNotFound("/tools/cli", "failed to find upload tool"), ErrFileNotFound},
		{"directory", DirectoryNotFound("/proj/Library/Bee/Android", "failed to find the symbols directory"), ErrDirectoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, kind) = false", tt.err)
			}
			if !errors.Is(tt.err, fs.ErrNotExist) {
				t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", tt.err)
			}

			var nf *NotFoundError
			if !errors.As(tt.err, &nf) {
				t.Fatal("errors.As failed")
			}
			if nf.Path == "" {
				t.Error("path not recorded")
			}
		})
	}

	if errors.Is(ErrFileNotFound, ErrDirectoryNotFound) {
		t.Error("file and directory kinds must be distinct")
	}
}

func TestMust(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantPanic bool
	}{
		{name: "no error", err: nil, wantPanic: false},
		{name: "with error", err: errors.New("failed"), wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want %v", r != nil, tt.wantPanic)
				}
			}()

			Must(tt.err, "initialization")
		})
	}
}
