// Package safety validates destination paths against the allowed filesystem
// boundary (home directory and current working directory) and guards against
// transfers that would nest a source inside itself.
package safety

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/wizzomafizzo/datasink/internal/logging"
)

// Roots returns the canonicalized allowed boundary roots: the current user's
// home directory and the process working directory. Recomputed on every call
// so a chdir between transfers is picked up.
func Roots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	roots := make([]string, 0, 2)
	for _, root := range []string{home, cwd} {
		roots = append(roots, canonicalize(root))
	}
	return roots, nil
}

// Within reports whether path equals root or is a strict descendant of it.
// Both arguments must already be absolute.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Allows reports whether path falls inside any of the given roots. The path is
// resolved to canonical absolute form following symlinks when possible; if it
// (or an ancestor) does not exist yet, a lexical absolute join is used
// instead. An unresolvable path fails closed and is logged.
func Allows(ctx context.Context, roots []string, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		logging.Get(ctx).Error().
			Msgf("Path safety check failed for '%s': %v", path, err)
		return false
	}
	abs = canonicalize(abs)

	for _, root := range roots {
		if Within(canonicalize(root), abs) {
			return true
		}
	}
	return false
}

// SelfNests reports whether destination equals source or sits underneath it.
// Paths that do not exist yet are compared by their lexical absolute form, so
// a destination that would be created inside the source is still caught
// before anything touches the disk. The check is skipped only when a side
// cannot be made absolute at all.
func SelfNests(source, destination string) bool {
	src, err := filepath.Abs(source)
	if err != nil {
		return false
	}
	dst, err := filepath.Abs(destination)
	if err != nil {
		return false
	}
	return Within(canonicalize(src), canonicalize(dst))
}

// canonicalize resolves symlinks when the path exists, falling back to the
// cleaned absolute path when it does not.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
