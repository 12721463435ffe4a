package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", []string{}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.text))
		})
	}
}

func TestFileContext(t *testing.T) {
	file := NewFileContext("/repo/src/main/java/app/controller/A.java", "src/main/java/app/controller/A.java", "class A {\n}\n")

	assert.Equal(t, "class A {", file.Line(1))
	assert.Equal(t, "}", file.Line(2))
	assert.Equal(t, "", file.Line(0))
	assert.Equal(t, "", file.Line(3))
	assert.Len(t, file.Lines, 2)
}

func TestFileContext_InRole(t *testing.T) {
	file := NewFileContext("/repo/x", "src/main/java/app/controller/UserController.java", "")

	assert.True(t, file.InRole("controller"))
	assert.False(t, file.InRole("control"))
	assert.False(t, file.InRole("service"))
}

func TestNewProjectContext_SortsByRelPath(t *testing.T) {
	files := []*FileContext{
		NewFileContext("/r/b", "src/main/java/b/B.java", ""),
		NewFileContext("/r/a", "src/main/java/a/A.java", ""),
		NewFileContext("/r/c", "src/main/java/a/C.java", ""),
	}

	project := NewProjectContext("/r", files, true)

	assert.True(t, project.Strict)
	assert.Equal(t, "src/main/java/a/A.java", project.Files[0].RelPath)
	assert.Equal(t, "src/main/java/a/C.java", project.Files[1].RelPath)
	assert.Equal(t, "src/main/java/b/B.java", project.Files[2].RelPath)
	// the caller's slice is untouched
	assert.Equal(t, "src/main/java/b/B.java", files[0].RelPath)
}
