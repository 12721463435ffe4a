package linter

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileContext is an immutable view of one source file
type FileContext struct {
	Path    string
	RelPath string
	Text    string
	Lines   []string
}

// NewFileContext builds a FileContext from raw file content
func NewFileContext(path, relPath, text string) *FileContext {
	return &FileContext{
		Path:    path,
		RelPath: filepath.ToSlash(relPath),
		Text:    text,
		Lines:   SplitLines(text),
	}
}

// Line returns the 1-based line n, or "" when out of range
func (f *FileContext) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// InRole reports whether the relative path contains the /<role>/ segment
func (f *FileContext) InRole(role string) bool {
	return strings.Contains(f.RelPath, "/"+role+"/")
}

// ProjectContext holds every file of a run plus run configuration.
// Rules must treat it as read-only.
type ProjectContext struct {
	Root   string
	Files  []*FileContext
	Strict bool
}

// NewProjectContext sorts files by relative path and wraps them
func NewProjectContext(root string, files []*FileContext, strict bool) *ProjectContext {
	sorted := make([]*FileContext, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelPath < sorted[j].RelPath
	})

	return &ProjectContext{
		Root:   root,
		Files:  sorted,
		Strict: strict,
	}
}

// SplitLines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line.
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
