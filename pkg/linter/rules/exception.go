package rules

import (
	"regexp"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

var (
	exceptionClassPattern   = regexp.MustCompile(`\bclass\s+([A-Z]\w*Exception)\s+extends\s+[\w.]*Exception\b`)
	exceptionNamePattern    = regexp.MustCompile(`\bclass\s+[A-Z]\w*Exception\b`)
	serialVersionUIDPattern = regexp.MustCompile(`private\s+static\s+final\s+long\s+serialVersionUID\s*=\s*[-]?\d+L\s*;`)
)

// ExceptionSerialVersionUIDRule requires custom exceptions to pin serialVersionUID
type ExceptionSerialVersionUIDRule struct {
	BaseRule
}

// NewExceptionSerialVersionUIDRule creates a new serialVersionUID rule
func NewExceptionSerialVersionUIDRule() *ExceptionSerialVersionUIDRule {
	return &ExceptionSerialVersionUIDRule{
		BaseRule: BaseRule{
			RuleName:        RuleExceptionSerialVersionUID,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Exception classes must declare private static final long serialVersionUID",
		},
	}
}

// Check points at the class declaration
func (r *ExceptionSerialVersionUIDRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleException) {
		return nil
	}
	if !exceptionClassPattern.MatchString(file.Text) || serialVersionUIDPattern.MatchString(file.Text) {
		return nil
	}
	line := window.FirstLineMatching(file.Lines, exceptionNamePattern)
	return []linter.Violation{r.atLineOrFile(file, linter.SeverityError, line,
		"Exception class must declare static final long serialVersionUID.")}
}
