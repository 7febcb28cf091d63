package enum

import (
	"context"
	"fmt"
	"os"
)

// Callback receives the path and content of one discovered source file.
// It may be called concurrently.
type Callback func(path string, content []byte) error

// Enumerator discovers lexer source files to lint.
type Enumerator interface {
	Enumerate(ctx context.Context, callback Callback) error
}

// DefaultExtensions are the file extensions walked when none are configured.
var DefaultExtensions = []string{".py"}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Extensions selects files in directories by extension. Empty means
	// DefaultExtensions. Files named explicitly are never filtered by it.
	Extensions []string

	// Concurrency is the number of parallel readers (0 = one per CPU).
	Concurrency int
}

// ForPath returns an enumerator for a file or a directory tree.
func ForPath(path string, config Config) (Enumerator, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	config.Root = path
	if info.IsDir() {
		return NewFilesystemEnumerator(config), nil
	}
	return NewFileEnumerator(path, config.MaxFileSize), nil
}

// ForPaths combines the enumerators of several paths. A file reached
// through more than one path is yielded once.
func ForPaths(paths []string, config Config) (Enumerator, error) {
	var enumerators []Enumerator
	for _, p := range paths {
		e, err := ForPath(p, config)
		if err != nil {
			return nil, err
		}
		enumerators = append(enumerators, e)
	}
	return NewCombinedEnumerator(enumerators...), nil
}
