// Package gallery tracks the images shown for the active folder: which files
// qualify, their thumbnails, the current selection and how each rescan is
// reconciled against what is already displayed.
package gallery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"imagehelper/internal/errors"
	"imagehelper/pkg/types"
)

// DefaultPatterns are the file names the gallery shows.
var DefaultPatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif"}

// Scanner lists the image files directly inside a folder.
type Scanner struct {
	patterns []glob.Glob
}

// NewScanner compiles patterns. Names are lowercased before matching, so
// patterns should be written in lower case.
func NewScanner(patterns []string) (*Scanner, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	s := &Scanner{}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, errors.NewConfigError("invalid image pattern", p, errors.InvalidConfig, err)
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

// Match reports whether name qualifies as an image.
func (s *Scanner) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range s.patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// List returns the matching regular files in dir, ordered by name. It does
// not descend into subfolders.
func (s *Scanner) List(dir string) ([]types.ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot list folder", dir, errors.ScanFailed, err)
	}

	var files []types.ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !s.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks so a link to an image counts as a regular file
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, types.NewImageFile(path, info))
	}
	return files, nil
}
