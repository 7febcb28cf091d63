package enum

import (
	"context"
	"path/filepath"
	"sync"
)

// CombinedEnumerator runs multiple enumerators sequentially and
// deduplicates files by cleaned absolute path so each file is yielded at
// most once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator creates a CombinedEnumerator that wraps the
// provided enumerators. They are run in order.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence, passing unseen files
// to callback.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	var mu sync.Mutex
	seen := make(map[string]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(path string, content []byte) error {
			key := path
			if abs, err := filepath.Abs(path); err == nil {
				key = abs
			}
			mu.Lock()
			if seen[key] {
				mu.Unlock()
				return nil
			}
			seen[key] = true
			mu.Unlock()

			return callback(path, content)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
