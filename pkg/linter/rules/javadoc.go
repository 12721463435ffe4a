package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

const (
	controllerDocLookback = 10
	endpointDocLookback   = 12
	serviceDocLookback    = 20
	signatureMaxLines     = 8
)

var (
	restControllerAnnotation = regexp.MustCompile(`^\s*@\s*RestController\b`)
	publicMethodStart        = regexp.MustCompile(`^\s*public\s+.+\(.+\).*`)
)

// JavaDocControllerRule requires JavaDoc on controller classes and endpoints
type JavaDocControllerRule struct {
	BaseRule
}

// NewJavaDocControllerRule creates a new controller documentation rule
func NewJavaDocControllerRule() *JavaDocControllerRule {
	return &JavaDocControllerRule{
		BaseRule: BaseRule{
			RuleName:        RuleJavadocController,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Controller classes and endpoint mappings must carry JavaDoc",
		},
	}
}

// Check looks above the first @RestController and every mapping annotation
func (r *JavaDocControllerRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleController) {
		return nil
	}
	var violations []linter.Violation

	if line := window.FirstLineMatching(file.Lines, restControllerAnnotation); line > 0 {
		if !window.HasDocCommentAbove(file.Lines, line, controllerDocLookback) {
			violations = append(violations, r.at(file, linter.SeverityError, line,
				"Controller class must define JavaDoc."))
		}
	}

	eachLine(file, func(number int, raw string) {
		if !mappingAnnotation.MatchString(raw) {
			return
		}
		if window.HasDocCommentAbove(file.Lines, number, endpointDocLookback) {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Endpoint mapping must define JavaDoc."))
	})
	return violations
}

// JavaDocServiceRule requires public service methods to document their
// parameters and return value
type JavaDocServiceRule struct {
	BaseRule
}

// NewJavaDocServiceRule creates a new service documentation rule
func NewJavaDocServiceRule() *JavaDocServiceRule {
	return &JavaDocServiceRule{
		BaseRule: BaseRule{
			RuleName:        RuleJavadocService,
			RuleCategory:    linter.CategoryWindow,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Public service methods must have JavaDoc with @param/@return",
		},
	}
}

// Check inspects every public method with at least one parameter. Constructors
// are skipped.
func (r *JavaDocServiceRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleService) {
		return nil
	}
	className := detectPrimaryClassName(file.Lines)
	var violations []linter.Violation

	eachLine(file, func(number int, raw string) {
		stripped := strings.TrimSpace(raw)
		if !publicMethodStart.MatchString(stripped) || strings.Contains(stripped, " class ") {
			return
		}
		signature := collectMethodSignature(file.Lines, number, signatureMaxLines)
		methodName := extractMethodName(signature)
		if methodName == "" || methodName == className {
			return
		}

		javadoc := window.ExtractDocCommentAbove(file.Lines, number, serviceDocLookback)
		if javadoc == "" {
			violations = append(violations, r.at(file, linter.SeverityError, number,
				"Service method must have JavaDoc with @param/@return."))
			return
		}

		for _, param := range extractParamNames(signature) {
			if !strings.Contains(javadoc, "@param "+param) {
				violations = append(violations, r.at(file, linter.SeverityError, number,
					fmt.Sprintf("Service JavaDoc missing @param for '%s'.", param)))
				break
			}
		}

		if extractReturnType(signature) == "void" || strings.Contains(javadoc, "@return") {
			return
		}
		violations = append(violations, r.at(file, linter.SeverityError, number,
			"Service JavaDoc missing @return."))
	})
	return violations
}
