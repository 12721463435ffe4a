package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

var mapstructMapperPattern = regexp.MustCompile(`@\s*Mapper\b`)

// SharedFieldsMappedSuperclassRule suggests a @MappedSuperclass when several
// entities repeat the same audit timestamps
type SharedFieldsMappedSuperclassRule struct {
	BaseRule
}

// NewSharedFieldsMappedSuperclassRule creates a new shared audit field rule
func NewSharedFieldsMappedSuperclassRule() *SharedFieldsMappedSuperclassRule {
	return &SharedFieldsMappedSuperclassRule{
		BaseRule: BaseRule{
			RuleName:        RuleSharedMappedSuperclass,
			RuleCategory:    linter.CategoryAggregate,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Entities sharing createdAt/updatedAt should extend a @MappedSuperclass",
		},
	}
}

// CheckProject reports once, on the first entity carrying both fields
func (r *SharedFieldsMappedSuperclassRule) CheckProject(project *linter.ProjectContext) []linter.Violation {
	entities := make([]*linter.FileContext, 0)
	for _, file := range project.Files {
		if isEntity(file) {
			entities = append(entities, file)
		}
	}
	if len(entities) < 2 {
		return nil
	}
	for _, file := range project.Files {
		if mappedSuperclassPattern.MatchString(file.Text) {
			return nil
		}
	}

	common := make([]*linter.FileContext, 0, len(entities))
	for _, entity := range entities {
		if strings.Contains(entity.Text, "createdAt") && strings.Contains(entity.Text, "updatedAt") {
			common = append(common, entity)
		}
	}
	if len(common) < 2 {
		return nil
	}

	targets := make([]string, 0, 3)
	for _, file := range common[:min(3, len(common))] {
		targets = append(targets, file.RelPath)
	}
	return []linter.Violation{{
		Rule:     r.RuleName,
		Severity: linter.SeverityWarning,
		File:     common[0].RelPath,
		Line:     1,
		Reason:   "Multiple entities share audit fields; consider @MappedSuperclass base entity.",
		Snippet:  strings.Join(targets, ", "),
	}}
}

// MapStructRequiredRule requires a MapStruct mapper interface once a project
// has both entities and DTOs
type MapStructRequiredRule struct {
	BaseRule
}

// NewMapStructRequiredRule creates a new mapper presence rule
func NewMapStructRequiredRule() *MapStructRequiredRule {
	return &MapStructRequiredRule{
		BaseRule: BaseRule{
			RuleName:        RuleMapStructMapperRequired,
			RuleCategory:    linter.CategoryAggregate,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Projects with entities and DTOs must define a @Mapper interface",
		},
	}
}

// CheckProject reports on the first mapper file, or the first project file
// when there is none
func (r *MapStructRequiredRule) CheckProject(project *linter.ProjectContext) []linter.Violation {
	if len(project.Files) == 0 {
		return nil
	}
	hasEntity, hasDTO := false, false
	mappers := make([]*linter.FileContext, 0)
	for _, file := range project.Files {
		if file.InRole(roleEntity) && isEntity(file) {
			hasEntity = true
		}
		if file.InRole(roleDTO) {
			hasDTO = true
		}
		if file.InRole(roleMapper) {
			mappers = append(mappers, file)
		}
	}
	if !hasEntity || !hasDTO {
		return nil
	}
	for _, mapper := range mappers {
		if mapstructMapperPattern.MatchString(mapper.Text) && interfacePattern.MatchString(mapper.Text) {
			return nil
		}
	}

	target := project.Files[0].RelPath
	if len(mappers) > 0 {
		target = mappers[0].RelPath
	}
	return []linter.Violation{{
		Rule:     r.RuleName,
		Severity: linter.SeverityError,
		File:     target,
		Line:     1,
		Reason:   "Project has Entity + DTO but missing MapStruct mapper interface (@Mapper).",
		Snippet:  `Define mapper under "/mapper/" using @Mapper.`,
	}}
}
