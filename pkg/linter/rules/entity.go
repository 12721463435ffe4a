package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

var (
	relationPattern           = regexp.MustCompile(`@\s*(OneToMany|ManyToOne|ManyToMany|OneToOne)\s*(\((.*?)\))?`)
	manyToOnePattern          = regexp.MustCompile(`@\s*ManyToOne\b`)
	importServiceOrRepository = regexp.MustCompile(`(?m)^import\s+.*\.(service|repository)\.`)
	idAnnotationPattern       = regexp.MustCompile(`@\s*Id\b`)
	lombokDataPattern         = regexp.MustCompile(`@\s*Data\b`)
	prePersistPattern         = regexp.MustCompile(`@\s*PrePersist\b`)
	preUpdatePattern          = regexp.MustCompile(`@\s*PreUpdate\b`)
	createdDatePattern        = regexp.MustCompile(`@\s*CreatedDate\b`)
	lastModifiedDatePattern   = regexp.MustCompile(`@\s*LastModifiedDate\b`)
	versionPattern            = regexp.MustCompile(`@\s*Version\b`)
	enumeratedPattern         = regexp.MustCompile(`@\s*Enumerated\b`)
	enumeratedStringPattern   = regexp.MustCompile(`@\s*Enumerated\s*\(\s*EnumType\.STRING\s*\)`)
)

// EntityNoDataRule forbids Lombok @Data on JPA entities
type EntityNoDataRule struct {
	BaseRule
}

// NewEntityNoDataRule creates a new entity @Data rule
func NewEntityNoDataRule() *EntityNoDataRule {
	return &EntityNoDataRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityNoData,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "@Data is forbidden on JPA entities",
		},
	}
}

// Check reports the first @Data
func (r *EntityNoDataRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	line := window.FirstLineMatching(file.Lines, lombokDataPattern)
	if line <= 0 {
		return nil
	}
	return []linter.Violation{r.at(file, linter.SeverityError, line, "@Data is forbidden on JPA Entity.")}
}

// EntityHasIDRule requires an @Id field on every entity
type EntityHasIDRule struct {
	BaseRule
}

// NewEntityHasIDRule creates a new entity identifier rule
func NewEntityHasIDRule() *EntityHasIDRule {
	return &EntityHasIDRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityHasID,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Entities must declare an @Id field",
		},
	}
}

// Check reports a file-scoped violation when no @Id exists
func (r *EntityHasIDRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) || idAnnotationPattern.MatchString(file.Text) {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityError, "Entity must declare @Id field.")}
}

// EntityLayerDependencyRule forbids entities importing service or repository packages
type EntityLayerDependencyRule struct {
	BaseRule
}

// NewEntityLayerDependencyRule creates a new entity layering rule
func NewEntityLayerDependencyRule() *EntityLayerDependencyRule {
	return &EntityLayerDependencyRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityNoLayerDep,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Entities must not depend on the service or repository layer",
		},
	}
}

// Check reports the first offending import
func (r *EntityLayerDependencyRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	loc := importServiceOrRepository.FindStringIndex(file.Text)
	if loc == nil {
		return nil
	}
	line := window.LineForOffset(file.Text, loc[0])
	return []linter.Violation{r.at(file, linter.SeverityError, line, "Entity must not depend on service/repository layer.")}
}

// EntityRelationFetchRule requires relations to declare fetch = FetchType.LAZY
type EntityRelationFetchRule struct {
	BaseRule
}

// NewEntityRelationFetchRule creates a new relation fetch strategy rule
func NewEntityRelationFetchRule() *EntityRelationFetchRule {
	return &EntityRelationFetchRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityRelationFetch,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Relation annotations should use fetch = FetchType.LAZY",
		},
	}
}

// Check inspects the argument list on the annotation line
func (r *EntityRelationFetchRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		match := relationPattern.FindStringSubmatch(raw)
		if match == nil {
			return
		}
		if strings.Contains(match[3], "fetch = FetchType.LAZY") {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityWarning, number,
			match[1]+" should explicitly use fetch = FetchType.LAZY."))
	})
	return violations
}

// EntityManyToOneJoinColumnRule requires @JoinColumn shortly after @ManyToOne
type EntityManyToOneJoinColumnRule struct {
	BaseRule
}

// NewEntityManyToOneJoinColumnRule creates a new join column rule
func NewEntityManyToOneJoinColumnRule() *EntityManyToOneJoinColumnRule {
	return &EntityManyToOneJoinColumnRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityManyToOneJoin,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "@ManyToOne needs @JoinColumn within the next 5 lines",
		},
	}
}

// Check looks at the 5 non-blank lines below each @ManyToOne
func (r *EntityManyToOneJoinColumnRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !manyToOnePattern.MatchString(raw) {
			return
		}
		for _, next := range window.ForwardNonBlank(file.Lines, number, 5) {
			if strings.Contains(next.Text, "@JoinColumn") {
				return
			}
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"@ManyToOne should define @JoinColumn explicitly."))
	})
	return violations
}

// EntityAuditLifecycleRule requires lifecycle callbacks or auditing for timestamp fields
type EntityAuditLifecycleRule struct {
	BaseRule
}

// NewEntityAuditLifecycleRule creates a new audit lifecycle rule
func NewEntityAuditLifecycleRule() *EntityAuditLifecycleRule {
	return &EntityAuditLifecycleRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityAuditLifecycle,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "createdAt/updatedAt need @PrePersist+@PreUpdate or @CreatedDate+@LastModifiedDate",
		},
	}
}

// Check accepts either callback pair
func (r *EntityAuditLifecycleRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	if !strings.Contains(file.Text, "createdAt") && !strings.Contains(file.Text, "updatedAt") {
		return nil
	}
	if prePersistPattern.MatchString(file.Text) && preUpdatePattern.MatchString(file.Text) {
		return nil
	}
	if createdDatePattern.MatchString(file.Text) && lastModifiedDatePattern.MatchString(file.Text) {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityWarning,
		"Entity has createdAt/updatedAt but missing lifecycle/auditing setup.")}
}

// EntityVersionRule expects @Version for optimistic locking
type EntityVersionRule struct {
	BaseRule
}

// NewEntityVersionRule creates a new optimistic lock rule
func NewEntityVersionRule() *EntityVersionRule {
	return &EntityVersionRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityOptimisticLock,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Entities should declare @Version",
		},
	}
}

// Check reports entities without @Version
func (r *EntityVersionRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) || versionPattern.MatchString(file.Text) {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityWarning,
		"Entity should define @Version for optimistic locking in concurrent updates.")}
}

// EntityEnumeratedStringRule requires @Enumerated(EnumType.STRING)
type EntityEnumeratedStringRule struct {
	BaseRule
}

// NewEntityEnumeratedStringRule creates a new enum mapping rule
func NewEntityEnumeratedStringRule() *EntityEnumeratedStringRule {
	return &EntityEnumeratedStringRule{
		BaseRule: BaseRule{
			RuleName:        RuleEntityEnumString,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "@Enumerated must use EnumType.STRING",
		},
	}
}

// Check scans every @Enumerated line
func (r *EntityEnumeratedStringRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !enumeratedPattern.MatchString(raw) || enumeratedStringPattern.MatchString(raw) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number, "@Enumerated must use EnumType.STRING."))
	})
	return violations
}
