package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

const (
	nativeQueryBlockLines  = 20
	keywordQueryBlockLines = 40
)

var jpqlEntityFromPattern = regexp.MustCompile(`\bfrom\s+[A-Z]\w+\b`)

// lowercaseSQLKeywords are checked in order; the first hit is reported
var lowercaseSQLKeywords = compileAll(
	`\bselect\b`,
	`\bfrom\b`,
	`\bwhere\b`,
	`\bjoin\b`,
	`\bleft\b`,
	`\bright\b`,
	`\binner\b`,
	`\bouter\b`,
	`\bon\b`,
	`\band\b`,
	`\bor\b`,
	`\bunion\b`,
	`\ball\b`,
	`\bwith\b`,
	`\brecursive\b`,
	`\border\s+by\b`,
	`\bgroup\s+by\b`,
	`\bupdate\b`,
	`\bset\b`,
	`\bin\b`,
	`\bis\b`,
	`\bnull\b`,
	`\blower\s*\(`,
	`\bupper\s*\(`,
	`\bcount\s*\(`,
)

func compileAll(expressions ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(expressions))
	for i, expr := range expressions {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

// eachQuery calls fn for every @Query annotation line with its collected block
func eachQuery(file *linter.FileContext, maxLines int, fn func(number int, block string)) {
	eachLine(file, func(number int, raw string) {
		if !queryAnnotation.MatchString(raw) {
			return
		}
		fn(number, window.CollectBlock(file.Lines, number, maxLines))
	})
}

// QueryNativeSQLRule requires repository queries to be native SQL against
// table names
type QueryNativeSQLRule struct {
	BaseRule
}

// NewQueryNativeSQLRule creates a new native query rule
func NewQueryNativeSQLRule() *QueryNativeSQLRule {
	return &QueryNativeSQLRule{
		BaseRule: BaseRule{
			RuleName:        RuleQueryNativeSQL,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "@Query must set nativeQuery = true and reference tables, not entities",
		},
	}
}

// Check inspects every @Query block in repository files
func (r *QueryNativeSQLRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleRepository) {
		return nil
	}
	var violations []linter.Violation
	eachQuery(file, nativeQueryBlockLines, func(number int, block string) {
		switch {
		case !strings.Contains(block, "nativeQuery = true"):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"@Query must use native SQL: set nativeQuery = true."))
		case jpqlEntityFromPattern.MatchString(block):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"@Query must reference real table/column names, not JPA entity names."))
		}
	})
	return violations
}

// QueryKeywordUppercaseRule requires SQL keywords in @Query to be uppercase
type QueryKeywordUppercaseRule struct {
	BaseRule
}

// NewQueryKeywordUppercaseRule creates a new keyword case rule
func NewQueryKeywordUppercaseRule() *QueryKeywordUppercaseRule {
	return &QueryKeywordUppercaseRule{
		BaseRule: BaseRule{
			RuleName:        RuleQueryKeywordUppercase,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "SQL keywords in @Query must be uppercase",
		},
	}
}

// Check reports each @Query block holding a lowercase keyword once
func (r *QueryKeywordUppercaseRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleRepository) {
		return nil
	}
	var violations []linter.Violation
	eachQuery(file, keywordQueryBlockLines, func(number int, block string) {
		for _, keyword := range lowercaseSQLKeywords {
			if keyword.MatchString(block) {
				violations = append(violations, r.at(file, linter.SeverityError, number,
					"SQL keywords in @Query must be uppercase."))
				return
			}
		}
	})
	return violations
}
