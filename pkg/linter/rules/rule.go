package rules

import (
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleCategory    linter.Category
	RuleSeverity    linter.Severity
	RuleDescription string
}

func (r *BaseRule) Name() string { return r.RuleName }
func (r *BaseRule) Category() linter.Category { return r.RuleCategory }
func (r *BaseRule) Severity() linter.Severity { return r.RuleSeverity }
func (r *BaseRule) Description() string { return r.RuleDescription }

// at reports a violation on a line, using the trimmed line as snippet
func (r *BaseRule) at(file *linter.FileContext, severity linter.Severity, line int, reason string) linter.Violation {
	return linter.Violation{
		Rule:     r.RuleName,
		Severity: severity,
		File:     file.RelPath,
		Line:     line,
		Reason:   reason,
		Snippet:  strings.TrimSpace(file.Line(line)),
	}
}

// atFile reports a file-scoped violation on line 1 with the path as snippet
func (r *BaseRule) atFile(file *linter.FileContext, severity linter.Severity, reason string) linter.Violation {
	return linter.Violation{
		Rule:     r.RuleName,
		Severity: severity,
		File:     file.RelPath,
		Line:     1,
		Reason:   reason,
		Snippet:  file.RelPath,
	}
}

// atLineOrFile reports on line when it was found, otherwise on the file
func (r *BaseRule) atLineOrFile(file *linter.FileContext, severity linter.Severity, line int, reason string) linter.Violation {
	if line > 0 {
		return r.at(file, severity, line, reason)
	}
	return r.atFile(file, severity, reason)
}
