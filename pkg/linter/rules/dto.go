package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

const validationNames = `NotNull|NotBlank|NotEmpty|Size|Pattern|Min|Max|Positive|PositiveOrZero|Negative|NegativeOrZero|Email|Past|PastOrPresent|Future|FutureOrPresent|AssertTrue|AssertFalse`

var (
	dtoValidationPattern   = regexp.MustCompile(`@\s*(Valid|` + validationNames + `)\b`)
	validationStartPattern = regexp.MustCompile(`@\s*(` + validationNames + `)\b`)
	literalMessagePattern  = regexp.MustCompile(`message\s*=\s*"[^"]*"`)
)

func isRequestDTO(file *linter.FileContext) bool {
	return strings.Contains(file.RelPath, "/dto/request/")
}

// DtoValidationAnnotationRule requires request DTOs to carry bean validation
type DtoValidationAnnotationRule struct {
	BaseRule
}

// NewDtoValidationAnnotationRule creates a new request validation rule
func NewDtoValidationAnnotationRule() *DtoValidationAnnotationRule {
	return &DtoValidationAnnotationRule{
		BaseRule: BaseRule{
			RuleName:        RuleDtoValidationAnnotation,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Request DTOs must declare jakarta.validation annotations",
		},
	}
}

// Check reports request DTOs without any validation annotation
func (r *DtoValidationAnnotationRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isRequestDTO(file) || dtoValidationPattern.MatchString(file.Text) {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityError,
		"Request DTO must define validation annotations (jakarta.validation.*).")}
}

// DtoValidationMessageConstantRule forbids literal validation messages
type DtoValidationMessageConstantRule struct {
	BaseRule
}

// NewDtoValidationMessageConstantRule creates a new validation message rule
func NewDtoValidationMessageConstantRule() *DtoValidationMessageConstantRule {
	return &DtoValidationMessageConstantRule{
		BaseRule: BaseRule{
			RuleName:        RuleDtoValidationMessageConstant,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Validation messages must reference static constants",
		},
	}
}

// Check collects each annotation's argument block over up to 6 lines
func (r *DtoValidationMessageConstantRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isRequestDTO(file) {
		return nil
	}
	var violations []linter.Violation
	eachLine(file, func(number int, raw string) {
		if !validationStartPattern.MatchString(raw) {
			return
		}
		block := window.CollectBlock(file.Lines, number, 6)
		if strings.TrimSpace(block) == "" || !literalMessagePattern.MatchString(block) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Validation annotation message must use static constant, not string literal."))
	})
	return violations
}
