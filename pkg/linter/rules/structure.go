package rules

import (
	"fmt"
	"regexp"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

var (
	forPattern         = regexp.MustCompile(`^\s*for\s*\(`)
	elsePattern        = regexp.MustCompile(`\belse\b`)
	ifStatementPattern = regexp.MustCompile(`^\s*if\s*\(`)
)

// DefaultMaxClassLines is the class size limit when none is configured
const DefaultMaxClassLines = 300

// MaxClassLinesRule flags files longer than a fixed number of lines
type MaxClassLinesRule struct {
	BaseRule
	maxLines int
}

// NewMaxClassLinesRule creates a class size rule; maxLines <= 0 uses the default
func NewMaxClassLinesRule(maxLines int) *MaxClassLinesRule {
	if maxLines <= 0 {
		maxLines = DefaultMaxClassLines
	}
	return &MaxClassLinesRule{
		BaseRule: BaseRule{
			RuleName:        RuleClassMaxLines,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: fmt.Sprintf("Class files must not exceed %d lines", maxLines),
		},
		maxLines: maxLines,
	}
}

// Check counts lines
func (r *MaxClassLinesRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	count := len(file.Lines)
	if count <= r.maxLines {
		return nil
	}
	reason := fmt.Sprintf("Class file exceeds %d lines (found %d).", r.maxLines, count)
	return []linter.Violation{r.atFile(file, linter.SeverityWarning, reason)}
}

// NestedForRule flags the first deeper for-loop following a for-loop
type NestedForRule struct {
	BaseRule
}

// NewNestedForRule creates a new nested loop rule
func NewNestedForRule() *NestedForRule {
	return &NestedForRule{
		BaseRule: BaseRule{
			RuleName:        RuleNestedForStream,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Inner loops of nested for-loops should use Stream",
		},
	}
}

// Check scans the 30 non-blank lines after every for-loop
func (r *NestedForRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !forPattern.MatchString(raw) {
			return
		}
		outer := window.IndentLevel(raw)
		for _, candidate := range window.ForwardNonBlank(file.Lines, number, 30) {
			if !forPattern.MatchString(candidate.Text) {
				continue
			}
			if window.IndentLevel(candidate.Text) <= outer {
				continue
			}
			violations = append(violations, r.at(file, linter.SeverityWarning, candidate.Number,
				"Nested for-loop detected; prefer Stream for inner iteration to reduce nesting."))
			break
		}
	})
	return violations
}

// NoElseRule forbids else and else-if outside comments
type NoElseRule struct {
	BaseRule
}

// NewNoElseRule creates a new no-else rule
func NewNoElseRule() *NoElseRule {
	return &NoElseRule{
		BaseRule: BaseRule{
			RuleName:        RuleNoElse,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "else/else-if is forbidden; use guard clauses",
		},
	}
}

// Check scans comment-stripped lines
func (r *NoElseRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		line := codeLine(raw)
		if line == "" || !elsePattern.MatchString(line) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"else/else-if is forbidden. Use guard clauses and early return."))
	})
	return violations
}

// IfRequiresCommentRule requires a // comment shortly above every if statement
type IfRequiresCommentRule struct {
	BaseRule
}

// NewIfRequiresCommentRule creates a new guard comment rule
func NewIfRequiresCommentRule() *IfRequiresCommentRule {
	return &IfRequiresCommentRule{
		BaseRule: BaseRule{
			RuleName:        RuleIfRequiresComment,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "if statements need a preceding comment explaining the condition",
		},
	}
}

// Check looks 4 lines above each if statement
func (r *IfRequiresCommentRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !ifStatementPattern.MatchString(raw) {
			return
		}
		if window.HasLineCommentAbove(file.Lines, number, 4) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"if statement must have a preceding comment explaining the condition."))
	})
	return violations
}
