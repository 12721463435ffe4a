package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

var (
	extendsJpaPattern = regexp.MustCompile(`\bextends\s+JpaRepository<`)
	findMethodPattern = regexp.MustCompile(`^\s*(?:Page<.*>|List<.*>|Optional<.*>|[\w<>?,\s]+)\s+find\w*\s*\(`)
)

// RepositoryJpaRule requires repository interfaces to extend JpaRepository
type RepositoryJpaRule struct {
	BaseRule
}

// NewRepositoryJpaRule creates a new repository base interface rule
func NewRepositoryJpaRule() *RepositoryJpaRule {
	return &RepositoryJpaRule{
		BaseRule: BaseRule{
			RuleName:        RuleRepositoryExtendsJpa,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Repository interfaces must extend JpaRepository",
		},
	}
}

// Check skips projections and non-interface files
func (r *RepositoryJpaRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleRepository) {
		return nil
	}
	if strings.Contains(file.RelPath, "/repository/projection/") {
		return nil
	}
	if !interfacePattern.MatchString(file.Text) {
		return nil
	}
	if extendsJpaPattern.MatchString(file.Text) {
		return nil
	}
	line := window.FirstLineMatching(file.Lines, interfacePattern)
	return []linter.Violation{r.atLineOrFile(file, linter.SeverityError, line, "Repository interface should extend JpaRepository.")}
}

// SoftDeleteFindFilterRule expects repository finders to exclude soft-deleted rows
type SoftDeleteFindFilterRule struct {
	BaseRule
}

// NewSoftDeleteFindFilterRule creates a new soft delete filter rule
func NewSoftDeleteFindFilterRule() *SoftDeleteFindFilterRule {
	return &SoftDeleteFindFilterRule{
		BaseRule: BaseRule{
			RuleName:        RuleSoftDeleteFindFilter,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Repository finders should filter soft-deleted rows",
		},
	}
}

// Check accepts a "Deleted" method name or a @Query mentioning deleted in
// the 40 non-blank lines above.
func (r *SoftDeleteFindFilterRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleRepository) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !findMethodPattern.MatchString(raw) {
			return
		}
		if strings.Contains(strings.TrimSpace(raw), "Deleted") {
			return
		}

		previous := window.BackwardNonBlank(file.Lines, number, 40)
		hasQuery := false
		texts := make([]string, 0, len(previous))
		for _, line := range previous {
			if strings.Contains(line.Text, "@Query") {
				hasQuery = true
			}
			texts = append(texts, line.Text)
		}
		if hasQuery && strings.Contains(strings.ToLower(strings.Join(texts, " ")), "deleted") {
			return
		}

		violations = append(violations, r.at(file, linter.SeverityWarning, number,
			`Repository find-method should include deleted filter (e.g. "...AndDeletedFalse").`))
	})
	return violations
}
