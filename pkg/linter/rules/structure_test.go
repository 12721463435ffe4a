package rules

import (
	"strings"
	"testing"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxClassLinesRule(t *testing.T) {
	rule := NewMaxClassLinesRule(0)

	tests := []struct {
		name      string
		lineCount int
		expected  int
	}{
		{"at limit", 300, 0},
		{"one over", 301, 1},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("x\n", tt.lineCount)
			file := linter.NewFileContext("/repo/A.java", "src/main/java/A.java", text)
			violations := runRule(rule, file)
			require.Len(t, violations, tt.expected)
			if tt.expected == 0 {
				return
			}
			assert.Equal(t, 1, violations[0].Line)
			assert.Equal(t, linter.SeverityWarning, violations[0].Severity)
			assert.Equal(t, "src/main/java/A.java", violations[0].Snippet)
			assert.Equal(t, "Class file exceeds 300 lines (found 301).", violations[0].Reason)
		})
	}
}

func TestNoElseRule(t *testing.T) {
	rule := NewNoElseRule()

	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"else block", "} else {", 1},
		{"else if", "} else if (x) {", 1},
		{"only in comment", "return; // else branch removed", 0},
		{"identifier containing else", "int elsewhere = 1;", 0},
		{"whole line comment", "// else", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := javaFile("src/main/java/app/A.java", "class A {", tt.line, "}")
			violations := runRule(rule, file)
			require.Len(t, violations, tt.expected)
			if tt.expected > 0 {
				assert.Equal(t, 2, violations[0].Line)
				assert.Equal(t, strings.TrimSpace(tt.line), violations[0].Snippet)
			}
		})
	}
}

func TestNestedForRule(t *testing.T) {
	rule := NewNestedForRule()

	file := javaFile("src/main/java/app/service/A.java",
		"class A {",
		"  void run() {",
		"    for (int i = 0; i < n; i++) {",
		"",
		"      for (int j = 0; j < m; j++) {",
		"        for (int k = 0; k < o; k++) {",
		"        }",
		"      }",
		"    }",
		"    for (String s : items) {",
		"    }",
		"  }",
		"}",
	)

	violations := runRule(rule, file)
	// line 5 for the loop at 3, line 6 for the loop at 5
	assert.Equal(t, []int{5, 6}, lineNumbers(violations))
	for _, v := range violations {
		assert.Equal(t, linter.SeverityWarning, v.Severity)
	}
}

func TestIfRequiresCommentRule(t *testing.T) {
	rule := NewIfRequiresCommentRule()

	tests := []struct {
		name     string
		lines    []string
		expected []int
	}{
		{
			name:     "comment directly above",
			lines:    []string{"void f() {", "  // guard", "  if (x) {", "  }", "}"},
			expected: []int{},
		},
		{
			name:     "annotation and blank between",
			lines:    []string{"// guard", "", "@SuppressWarnings(\"x\")", "if (x) {", "}"},
			expected: []int{},
		},
		{
			name:     "code above",
			lines:    []string{"// guard", "int y = 1;", "if (x) {", "}"},
			expected: []int{3},
		},
		{
			name:     "comment beyond lookback",
			lines:    []string{"// guard", "", "", "", "", "if (x) {", "}"},
			expected: []int{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := javaFile("src/main/java/app/A.java", tt.lines...)
			assert.Equal(t, tt.expected, lineNumbers(runRule(rule, file)))
		})
	}
}
