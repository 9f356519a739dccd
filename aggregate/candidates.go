package aggregate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dendrascience/edge-aggregate/util"
	"go.uber.org/zap"
)

// Suffixes lists the file name endings that make a file a candidate.
// ".txt.gz" is covered by ".gz" but kept for documentation.
var Suffixes = []string{".gz", ".txt", ".txt.gz"}

// IsCandidate reports whether a file name has one of the recognized suffixes.
func IsCandidate(name string) bool {
	for _, s := range Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// Discover walks inputDir recursively and returns the paths of all candidate
// files in ascending lexicographic order. Paths are built by joining inputDir
// with the relative path of each file. A symlinked inputDir is followed;
// symlinks below it are not.
//
// An unreadable subdirectory is logged and skipped. A missing or unreadable
// inputDir is an error. An empty result is not an error here; callers decide
// what no candidates means.
func Discover(inputDir string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", inputDir, util.ErrExpectedDirectory)
	}

	root, err := filepath.EvalSymlinks(inputDir)
	if err != nil {
		return nil, err
	}

	var candidates []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			log.Debug("skipping unsupported symlink", zap.String("path", path))
			return nil
		}
		if !d.Type().IsRegular() || !IsCandidate(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		candidates = append(candidates, filepath.Join(inputDir, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking path %s: %w", inputDir, err)
	}
	slices.Sort(candidates)
	return candidates, nil
}
