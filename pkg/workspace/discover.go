// Package workspace finds the Java sources of a project and loads them into
// linter file contexts.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

// ErrRootNotDirectory is returned when the project root exists but is not a directory
var ErrRootNotDirectory = errors.New("project root is not a directory")

// Discover walks every configured source root under root and returns the
// files with the configured extension, sorted by relative path. Missing
// source roots are skipped. Files matching an ignore glob are left out.
func Discover(root string, config *linter.Config) ([]*linter.FileContext, error) {
	if config == nil {
		config = linter.DefaultConfig()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrRootNotDirectory)
	}

	var files []*linter.FileContext
	seen := make(map[string]bool)
	for _, sourceRoot := range config.SourceRoots {
		dir := filepath.Join(root, filepath.FromSlash(sourceRoot))
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), config.Extension) {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] || config.IsIgnored(rel) {
				return nil
			}
			seen[rel] = true

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", rel, err)
			}
			files = append(files, linter.NewFileContext(path, rel, string(content)))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", sourceRoot, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// Load discovers the sources under root and wraps them in a project context
func Load(root string, config *linter.Config, strict bool) (*linter.ProjectContext, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	files, err := Discover(absRoot, config)
	if err != nil {
		return nil, err
	}
	return linter.NewProjectContext(absRoot, files, strict), nil
}
