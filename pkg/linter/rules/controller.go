package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

var (
	requestMappingPattern      = regexp.MustCompile(`@\s*RequestMapping\s*\(\s*"([^"]+)"`)
	versionedRoutePattern      = regexp.MustCompile(`^/api/v\d+/`)
	entityResponsePattern      = regexp.MustCompile(`\bResponseEntity<\s*\w+Entity\s*>`)
	directEntityReturnPattern  = regexp.MustCompile(`\bpublic\s+(\w+Entity)\s+\w+\s*\(`)
	transactionalPattern       = regexp.MustCompile(`@\s*Transactional\b`)
	operationAnnotationPattern = regexp.MustCompile(`^\s*@\s*Operation\b`)
)

var verbMappingTokens = []string{"@GetMapping", "@PostMapping", "@PutMapping", "@PatchMapping", "@DeleteMapping"}

// ControllerRestRule requires controllers to be declared with @RestController
type ControllerRestRule struct {
	BaseRule
}

// NewControllerRestRule creates a new controller layering rule
func NewControllerRestRule() *ControllerRestRule {
	return &ControllerRestRule{
		BaseRule: BaseRule{
			RuleName:        RuleControllerRest,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Controllers must be declared with @RestController",
		},
	}
}

// Check flags @Controller as an error and undeclared endpoint files as a warning
func (r *ControllerRestRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	if strings.Contains(file.Text, "@RestController") {
		return nil
	}
	if line := window.FirstLineContaining(file.Lines, "@Controller"); line > 0 {
		return []linter.Violation{r.at(file, linter.SeverityError, line, "Controller must use @RestController.")}
	}
	line := window.FirstLineContainingAny(file.Lines, verbMappingTokens)
	if line <= 0 {
		return nil
	}
	return []linter.Violation{r.at(file, linter.SeverityWarning, line, "Controller-like file should declare @RestController.")}
}

// ControllerTransactionalRule forbids @Transactional in the controller layer
type ControllerTransactionalRule struct {
	BaseRule
}

// NewControllerTransactionalRule creates a new controller transaction rule
func NewControllerTransactionalRule() *ControllerTransactionalRule {
	return &ControllerTransactionalRule{
		BaseRule: BaseRule{
			RuleName:        RuleControllerTransactional,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Controllers must not declare transaction boundaries",
		},
	}
}

// Check reports the first @Transactional
func (r *ControllerTransactionalRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	line := window.FirstLineMatching(file.Lines, transactionalPattern)
	if line <= 0 {
		return nil
	}
	return []linter.Violation{r.at(file, linter.SeverityError, line, "Do not put @Transactional in controller layer.")}
}

// ControllerEntityResponseRule forbids returning persistence entities from controllers
type ControllerEntityResponseRule struct {
	BaseRule
}

// NewControllerEntityResponseRule creates a new entity leak rule
func NewControllerEntityResponseRule() *ControllerEntityResponseRule {
	return &ControllerEntityResponseRule{
		BaseRule: BaseRule{
			RuleName:        RuleControllerEntityResponse,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Controllers must return DTOs, never *Entity types",
		},
	}
}

// Check scans every line for entity-typed responses
func (r *ControllerEntityResponseRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		stripped := strings.TrimSpace(raw)
		switch {
		case entityResponsePattern.MatchString(stripped):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"Controller must not return Entity directly; use DTO."))
		case directEntityReturnPattern.MatchString(stripped):
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"Controller method return type must not be Entity."))
		}
	})
	return violations
}

// ControllerAPIVersionRule requires the first @RequestMapping path to be versioned
type ControllerAPIVersionRule struct {
	BaseRule
}

// NewControllerAPIVersionRule creates a new API versioning rule
func NewControllerAPIVersionRule() *ControllerAPIVersionRule {
	return &ControllerAPIVersionRule{
		BaseRule: BaseRule{
			RuleName:        RuleControllerAPIVersion,
			RuleCategory:    linter.CategoryLineLocal,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: `Request mappings should start with "/api/v<N>/"`,
		},
	}
}

// Check inspects only the first mapping literal
func (r *ControllerAPIVersionRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	for index, raw := range file.Lines {
		match := requestMappingPattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		if versionedRoutePattern.MatchString(match[1]) {
			return nil
		}
		return []linter.Violation{r.at(file, linter.SeverityWarning, index+1,
			`Request mapping should be versioned, example: "/api/v1/...".`)}
	}
	return nil
}

// ControllerAPIDocRule requires @Operation close above every endpoint mapping
type ControllerAPIDocRule struct {
	BaseRule
}

// NewControllerAPIDocRule creates a new OpenAPI documentation rule
func NewControllerAPIDocRule() *ControllerAPIDocRule {
	return &ControllerAPIDocRule{
		BaseRule: BaseRule{
			RuleName:        RuleControllerAPIDoc,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Endpoint mappings need @Operation within the 5 lines above",
		},
	}
}

// Check looks at the 5 non-blank lines above each mapping
func (r *ControllerAPIDocRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !mappingAnnotation.MatchString(raw) {
			return
		}
		for _, previous := range window.BackwardNonBlank(file.Lines, number, 5) {
			if operationAnnotationPattern.MatchString(previous.Text) {
				return
			}
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Endpoint mapping requires @Operation for API documentation."))
	})
	return violations
}
