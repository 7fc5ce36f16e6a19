// Package locator enumerates source files under a fixed root directory
// and filters them by a case-insensitive pattern.
//
// The locator is a pure read-only filesystem query: it never modifies
// the tree and holds no state between calls. Traversal uses lexical
// directory order, so repeated runs against an unchanged tree produce
// the same match order.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNoSuchDirectory indicates the search root does not exist or is not a directory.
var ErrNoSuchDirectory = errors.New("no such directory")

// ErrInvalidPattern indicates the pattern is not a valid regular expression.
var ErrInvalidPattern = errors.New("invalid pattern")

// Locate walks root recursively and returns the paths of all regular
// files whose full path matches pattern. Matching is case-insensitive
// regular-expression matching against the slash-separated path as
// returned by the walk (root prefix included).
//
// An empty result is not an error. The returned order is the walk's
// lexical order and is deterministic for an unchanged tree.
func Locate(root, pattern string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchDirectory, root)
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if re.MatchString(filepath.ToSlash(path)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return matches, nil
}
