package rules

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

var (
	springBeanPattern              = regexp.MustCompile(`@\s*(Service|Component|RestController|Controller|Configuration)\b`)
	requiredArgsConstructorPattern = regexp.MustCompile(`@\s*RequiredArgsConstructor\b`)
	finalFieldPattern              = regexp.MustCompile(`^\s*private\s+final\s+[\w<>, ?]+\s+\w+\s*;`)
	lombokAccessorPattern          = regexp.MustCompile(`@\s*(Getter|Setter)\b`)
	manualAccessorPattern          = regexp.MustCompile(`^\s*public\s+[\w<>, ?\[\]]+\s+(get|set|is)[A-Z]\w*\s*\(`)
	lombokBuilderPattern           = regexp.MustCompile(`@\s*Builder\b`)
	recordPattern                  = regexp.MustCompile(`\brecord\s+[A-Z]\w*\s*\(`)
	privateFieldPattern            = regexp.MustCompile(`^\s*private\s+[\w<>, ?\[\]]+\s+\w+\s*;`)
)

const constructorCacheSize = 512

// LombokRequiredArgsConstructorRule wants Spring beans with final
// dependencies to use @RequiredArgsConstructor
type LombokRequiredArgsConstructorRule struct {
	BaseRule
	constructors *lru.Cache[string, *regexp.Regexp]
}

// NewLombokRequiredArgsConstructorRule creates a new constructor injection rule
func NewLombokRequiredArgsConstructorRule() *LombokRequiredArgsConstructorRule {
	cache, err := lru.New[string, *regexp.Regexp](constructorCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(err)
	}
	return &LombokRequiredArgsConstructorRule{
		BaseRule: BaseRule{
			RuleName:        RuleLombokRequiredArgsConstructor,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Spring beans with final fields should use @RequiredArgsConstructor",
		},
		constructors: cache,
	}
}

// constructorPattern returns the compiled "public <ClassName>(" matcher
func (r *LombokRequiredArgsConstructorRule) constructorPattern(className string) *regexp.Regexp {
	if pattern, ok := r.constructors.Get(className); ok {
		return pattern
	}
	pattern := regexp.MustCompile(`^\s*public\s+` + regexp.QuoteMeta(className) + `\s*\(`)
	r.constructors.Add(className, pattern)
	return pattern
}

// CachedPatterns reports how many constructor patterns are cached
func (r *LombokRequiredArgsConstructorRule) CachedPatterns() int {
	return r.constructors.Len()
}

// Check downgrades to a warning when an explicit constructor exists
func (r *LombokRequiredArgsConstructorRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !springBeanPattern.MatchString(file.Text) {
		return nil
	}
	hasFinalField := false
	for _, raw := range file.Lines {
		if finalFieldPattern.MatchString(raw) {
			hasFinalField = true
			break
		}
	}
	if !hasFinalField || requiredArgsConstructorPattern.MatchString(file.Text) {
		return nil
	}

	hasConstructor := false
	if className := detectPrimaryClassName(file.Lines); className != "" {
		pattern := r.constructorPattern(className)
		for _, raw := range file.Lines {
			if pattern.MatchString(raw) {
				hasConstructor = true
				break
			}
		}
	}

	if hasConstructor {
		return []linter.Violation{r.atFile(file, linter.SeverityWarning,
			"Spring bean uses constructor injection; prefer @RequiredArgsConstructor to reduce boilerplate.")}
	}
	return []linter.Violation{r.atFile(file, linter.SeverityError,
		"Spring bean with final dependencies should use @RequiredArgsConstructor.")}
}

// LombokEntityGetterSetterRule prefers Lombok accessors over hand-written ones
type LombokEntityGetterSetterRule struct {
	BaseRule
}

// NewLombokEntityGetterSetterRule creates a new entity accessor rule
func NewLombokEntityGetterSetterRule() *LombokEntityGetterSetterRule {
	return &LombokEntityGetterSetterRule{
		BaseRule: BaseRule{
			RuleName:        RuleLombokEntityGetterSetter,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Entities with 4+ manual accessors should use @Getter/@Setter",
		},
	}
}

// Check counts manual accessor declarations
func (r *LombokEntityGetterSetterRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !isEntity(file) || lombokAccessorPattern.MatchString(file.Text) {
		return nil
	}
	if countMatchingLines(file.Lines, manualAccessorPattern) < 4 {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityWarning,
		"Entity has many manual getters/setters; consider Lombok @Getter/@Setter.")}
}

// LombokBuilderPreferredRule prefers @Builder for DTO classes with several fields
type LombokBuilderPreferredRule struct {
	BaseRule
}

// NewLombokBuilderPreferredRule creates a new DTO builder rule
func NewLombokBuilderPreferredRule() *LombokBuilderPreferredRule {
	return &LombokBuilderPreferredRule{
		BaseRule: BaseRule{
			RuleName:        RuleLombokBuilderPreferred,
			RuleCategory:    linter.CategoryPathGated,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "DTO classes with 3+ private fields should use @Builder",
		},
	}
}

// Check skips records
func (r *LombokBuilderPreferredRule) Check(file *linter.FileContext, project *linter.ProjectContext) []linter.Violation {
	if !file.InRole(roleDTO) {
		return nil
	}
	if recordPattern.MatchString(file.Text) {
		return nil
	}
	if !strings.Contains(" "+file.Text+" ", " class ") {
		return nil
	}
	if lombokBuilderPattern.MatchString(file.Text) {
		return nil
	}
	if countMatchingLines(file.Lines, privateFieldPattern) < 3 {
		return nil
	}
	return []linter.Violation{r.atFile(file, linter.SeverityWarning,
		"DTO class has multiple fields; prefer Lombok @Builder for object construction.")}
}

func countMatchingLines(lines []string, pattern *regexp.Regexp) int {
	count := 0
	for _, raw := range lines {
		if pattern.MatchString(raw) {
			count++
		}
	}
	return count
}
