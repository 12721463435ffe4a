package rules

import (
	"regexp"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

var (
	hardDeleteCallPattern = regexp.MustCompile(`\.\s*delete(ById|All|AllById)?\s*\(`)
	manualMappingPattern  = regexp.MustCompile(`\bnew\s+\w+(Entity|Dto|DTO|Response|Request)\s*\(`)
)

// SoftDeleteNoHardDeleteRule forbids hard delete calls in services
type SoftDeleteNoHardDeleteRule struct {
	BaseRule
}

// NewSoftDeleteNoHardDeleteRule creates a new hard delete rule
func NewSoftDeleteNoHardDeleteRule() *SoftDeleteNoHardDeleteRule {
	return &SoftDeleteNoHardDeleteRule{
		BaseRule: BaseRule{
			RuleName:        RuleSoftDeleteNoHardDelete,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Services must soft delete instead of calling delete*()",
		},
	}
}

// Check scans every service line
func (r *SoftDeleteNoHardDeleteRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleService) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !hardDeleteCallPattern.MatchString(raw) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Hard delete call detected. Use soft delete strategy."))
	})
	return violations
}

// MapStructNoManualMappingRule discourages hand-built DTOs and entities
type MapStructNoManualMappingRule struct {
	BaseRule
}

// NewMapStructNoManualMappingRule creates a new manual mapping rule
func NewMapStructNoManualMappingRule() *MapStructNoManualMappingRule {
	return &MapStructNoManualMappingRule{
		BaseRule: BaseRule{
			RuleName:        RuleMapStructNoManualMapping,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Services and controllers should map objects with MapStruct",
		},
	}
}

// Check scans service and controller lines for constructor calls
func (r *MapStructNoManualMappingRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleService) && !file.InRole(roleController) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !manualMappingPattern.MatchString(raw) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityWarning, number,
			"Manual DTO/Entity construction detected; prefer MapStruct mapper."))
	})
	return violations
}
