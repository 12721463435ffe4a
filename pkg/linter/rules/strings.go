package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

var (
	directTrimPattern       = regexp.MustCompile(`\.\s*trim\s*\(`)
	directIsBlankPattern    = regexp.MustCompile(`\.\s*isBlank\s*\(`)
	nullOrBlankPattern      = regexp.MustCompile(`==\s*null.*\|\|.*\.isBlank\s*\(`)
	directStartsWithPattern = regexp.MustCompile(`\.\s*startsWith\s*\(`)
	directEndsWithPattern   = regexp.MustCompile(`\.\s*endsWith\s*\(`)
	directContainsPattern   = regexp.MustCompile(`\.\s*contains\s*\(`)
	directEqualsPattern     = regexp.MustCompile(`\.\s*equals\s*\(`)
	directEqualsIgnoreCase  = regexp.MustCompile(`\.\s*equalsIgnoreCase\s*\(`)

	// RE2 has no backreferences: the second identifier is captured and
	// compared with the first by sameVariable.
	nullOrEmptyPattern     = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*==\s*null\s*\|\|\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*isEmpty\s*\(`)
	notNullAndEmptyPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*!=\s*null\s*&&\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*isEmpty\s*\(`)
	notNullNotEmptyPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*!=\s*null\s*&&\s*!\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*isEmpty\s*\(`)
)

var sanctionedPredicateCalls = []string{
	"StringUtils.isEmpty(",
	"StringUtils.isNotEmpty(",
	"StringUtils.contains(",
	"StringUtils.equals(",
	"StringUtils.equalsIgnoreCase(",
	"Strings.CS.startsWith(",
	"Strings.CS.endsWith(",
	"Strings.CI.startsWith(",
	"Strings.CI.endsWith(",
}

// sameVariable reports whether pattern matches with both captured
// identifiers equal
func sameVariable(pattern *regexp.Regexp, line string) bool {
	for _, match := range pattern.FindAllStringSubmatch(line, -1) {
		if match[1] == match[2] {
			return true
		}
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// NoDirectTrimRule forbids String.trim() in favour of StringUtils
type NoDirectTrimRule struct {
	BaseRule
}

// NewNoDirectTrimRule creates a new trim rule
func NewNoDirectTrimRule() *NoDirectTrimRule {
	return &NoDirectTrimRule{
		BaseRule: BaseRule{
			RuleName:        RuleNoDirectTrim,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Use StringUtils.trim instead of .trim()",
		},
	}
}

// Check scans comment-stripped lines
func (r *NoDirectTrimRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		line := codeLine(raw)
		if line == "" || strings.Contains(line, "StringUtils.trim(") {
			return
		}
		if !directTrimPattern.MatchString(line) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Direct .trim() is forbidden. Use StringUtils from Apache Commons Lang3."))
	})
	return violations
}

// NoDirectBlankCheckRule forbids hand-written blank checks
type NoDirectBlankCheckRule struct {
	BaseRule
}

// NewNoDirectBlankCheckRule creates a new blank check rule
func NewNoDirectBlankCheckRule() *NoDirectBlankCheckRule {
	return &NoDirectBlankCheckRule{
		BaseRule: BaseRule{
			RuleName:        RuleNoDirectBlankCheck,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Use StringUtils.isBlank/isNotBlank instead of .isBlank()",
		},
	}
}

// Check reports at most one violation per line
func (r *NoDirectBlankCheckRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		line := codeLine(raw)
		if line == "" {
			return
		}
		if strings.Contains(line, "StringUtils.isBlank(") || strings.Contains(line, "StringUtils.isNotBlank(") {
			return
		}
		switch {
		case nullOrBlankPattern.MatchString(line):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"Direct null/blank check is forbidden. Use StringUtils.isBlank/isNotBlank."))
		case directIsBlankPattern.MatchString(line):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"Direct .isBlank() is forbidden. Use StringUtils.isBlank/isNotBlank."))
		}
	})
	return violations
}

// NoDirectStringPredicateRule forbids direct String predicates in favour of
// StringUtils and Strings.CS/CI
type NoDirectStringPredicateRule struct {
	BaseRule
}

// NewNoDirectStringPredicateRule creates a new string predicate rule
func NewNoDirectStringPredicateRule() *NoDirectStringPredicateRule {
	return &NoDirectStringPredicateRule{
		BaseRule: BaseRule{
			RuleName:        RuleNoDirectStringPredicate,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Use StringUtils / Strings.CS / Strings.CI for string predicates",
		},
	}
}

// predicateReason returns the reason for the first offending construct on
// the line, or "" when the line is clean.
func predicateReason(line string) string {
	const emptyReason = "Direct null/empty check is forbidden. Use StringUtils.isEmpty/isNotEmpty."
	switch {
	case sameVariable(nullOrEmptyPattern, line),
		sameVariable(notNullAndEmptyPattern, line),
		sameVariable(notNullNotEmptyPattern, line):
		return emptyReason
	case directStartsWithPattern.MatchString(line):
		return "Direct .startsWith() is forbidden. Use Apache Commons Lang3 Strings.CS/CI.startsWith."
	case directEndsWithPattern.MatchString(line):
		return "Direct .endsWith() is forbidden. Use Apache Commons Lang3 Strings.CS/CI.endsWith."
	case directContainsPattern.MatchString(line):
		return "Direct .contains() is forbidden. Use StringUtils.contains."
	case directEqualsPattern.MatchString(line):
		return "Direct .equals() is forbidden for String comparison. Use StringUtils.equals."
	case directEqualsIgnoreCase.MatchString(line):
		return "Direct .equalsIgnoreCase() is forbidden. Use StringUtils.equalsIgnoreCase."
	}
	return ""
}

// Check reports at most one violation per line
func (r *NoDirectStringPredicateRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		line := codeLine(raw)
		if line == "" || containsAny(line, sanctionedPredicateCalls) {
			return
		}
		if reason := predicateReason(line); reason != "" {
			violations = append(violations, r.at(file, linter.SeverityError, number, reason))
		}
	})
	return violations
}
