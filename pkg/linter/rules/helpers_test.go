package rules

import (
	"path/filepath"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

func javaFile(relPath string, lines ...string) *linter.FileContext {
	return linter.NewFileContext(filepath.Join("/repo", relPath), relPath, strings.Join(lines, "\n")+"\n")
}

func runRule(rule linter.Rule, file *linter.FileContext) []linter.Violation {
	project := linter.NewProjectContext("/repo", []*linter.FileContext{file}, false)
	return rule.Check(file, project)
}

func lineNumbers(violations []linter.Violation) []int {
	lines := make([]int, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, v.Line)
	}
	return lines
}

func reasons(violations []linter.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Reason)
	}
	return out
}
