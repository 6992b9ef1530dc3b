// Package gradle patches generated Gradle build scripts with the symbol
// upload block and writes the upload tool's properties file.
package gradle

import (
	"errors"
	"strings"

	"github.com/symhook/symhook/internal/constants"
)

// ErrUnterminatedBlock is returned when a script contains a start marker
// without a matching end marker after it.
var ErrUnterminatedBlock = errors.New("upload block start marker has no matching end marker")

// Document is a build script split around the autogenerated upload block.
// Everything outside the block is opaque text.
type Document struct {
	content string
	// start and end delimit the block, end exclusive. Both are -1 when the
	// script has no block.
	start int
	end   int
}

// Parse locates the first start marker and the first end marker strictly
// after it. The newline that follows the end marker belongs to the block.
func Parse(content string) (*Document, error) {
	doc := &Document{content: content, start: -1, end: -1}

	start := strings.Index(content, constants.BlockStartMarker)
	if start < 0 {
		return doc, nil
	}

	bodyStart := start + len(constants.BlockStartMarker)
	rel := strings.Index(content[bodyStart:], constants.BlockEndMarker)
	if rel < 0 {
		return nil, ErrUnterminatedBlock
	}

	end := bodyStart + rel + len(constants.BlockEndMarker)
	if end < len(content) && content[end] == '\n' {
		end++
	}

	doc.start = start
	doc.end = end
	return doc, nil
}

// HasBlock reports whether the script contains an upload block.
func (d *Document) HasBlock() bool {
	return d.start >= 0
}

// Block returns the block text including markers, or "" when absent.
func (d *Document) Block() string {
	if !d.HasBlock() {
		return ""
	}
	return d.content[d.start:d.end]
}

// WithoutBlock returns the script with the block removed.
func (d *Document) WithoutBlock() string {
	if !d.HasBlock() {
		return d.content
	}
	return d.content[:d.start] + d.content[d.end:]
}

// WithBlock returns the script with block appended at the end. The caller
// is responsible for not appending a second block.
func (d *Document) WithBlock(block string) string {
	return d.content + block
}

// String returns the script unchanged.
func (d *Document) String() string {
	return d.content
}
