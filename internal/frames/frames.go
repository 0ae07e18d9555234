// Package frames discovers the frame files of a render.
package frames

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/backmassage/aether-renderer/internal/errs"
)

// Collect returns the regular files directly inside dir whose base name
// matches pattern, sorted lexicographically by full path. Subdirectories are
// not searched. An empty result is not an error.
func Collect(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errs.Wrapf(err, errs.KindConfigParse, "frames.collect", "invalid file pattern '%s'", pattern)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrapf(err, errs.KindInputNotFound, "frames.collect", "cannot read frame directory '%s'", dir)
	}

	paths := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		ok, _ := filepath.Match(pattern, e.Name())
		return filepath.Join(dir, e.Name()), ok
	})
	sort.Strings(paths)
	return paths, nil
}

// HasWildcard reports whether pattern contains glob metacharacters, in
// which case the encoder must be told to expand it.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// InputPattern joins dir and pattern into the encoder's input argument.
func InputPattern(dir, pattern string) string {
	return filepath.Join(dir, pattern)
}
