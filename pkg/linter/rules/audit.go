package rules

import (
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

// AuditEntitySeparateClassRule requires audit fields to live in a mapped superclass
type AuditEntitySeparateClassRule struct {
	BaseRule
}

// NewAuditEntitySeparateClassRule creates a new entity audit base class rule
func NewAuditEntitySeparateClassRule() *AuditEntitySeparateClassRule {
	return &AuditEntitySeparateClassRule{
		BaseRule: BaseRule{
			RuleName:        RuleAuditEntitySeparateClass,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Entity audit fields belong in a @MappedSuperclass base",
		},
	}
}

// Check accepts entities extending an *Audit* class
func (r *AuditEntitySeparateClassRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) || mappedSuperclassPattern.MatchString(file.Text) {
		return nil
	}
	if _, extends, ok := findClassDeclaration(file.Lines); ok && strings.Contains(extends, "Audit") {
		return nil
	}
	fields := findAuditFieldLines(file.Lines)
	if len(fields) == 0 {
		return nil
	}
	return []linter.Violation{r.at(file, linter.SeverityError, fields[0].Number,
		"Entity must place audit fields in a separate base class (MappedSuperclass).")}
}

// AuditDtoSeparateClassRule requires DTOs to wrap audit fields in a dedicated model
type AuditDtoSeparateClassRule struct {
	BaseRule
}

// NewAuditDtoSeparateClassRule creates a new DTO audit model rule
func NewAuditDtoSeparateClassRule() *AuditDtoSeparateClassRule {
	return &AuditDtoSeparateClassRule{
		BaseRule: BaseRule{
			RuleName:        RuleAuditDtoSeparateClass,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "DTO audit fields belong in a separate audit model",
		},
	}
}

// Check skips files whose path names an audit model
func (r *AuditDtoSeparateClassRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleDTO) || strings.Contains(file.RelPath, "Audit") {
		return nil
	}
	fields := findAuditFieldLines(file.Lines)
	if len(fields) == 0 {
		return nil
	}
	return []linter.Violation{r.at(file, linter.SeverityError, fields[0].Number,
		"DTO must use separate audit model instead of direct audit fields.")}
}
