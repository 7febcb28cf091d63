package enum

import (
	"context"
	"fmt"
	"os"
)

// FileEnumerator yields a single named file.
type FileEnumerator struct {
	path        string
	maxFileSize int64
}

// NewFileEnumerator creates an enumerator for path. Files larger than
// maxFileSize are skipped when it is positive.
func NewFileEnumerator(path string, maxFileSize int64) *FileEnumerator {
	return &FileEnumerator{path: path, maxFileSize: maxFileSize}
}

// Enumerate reads the file and invokes callback once. Binary files are
// skipped.
func (e *FileEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.maxFileSize > 0 {
		info, err := os.Stat(e.path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", e.path, err)
		}
		if info.Size() > e.maxFileSize {
			return nil
		}
	}
	content, err := os.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", e.path, err)
	}
	if isBinary(content) {
		return nil
	}
	return callback(e.path, content)
}
