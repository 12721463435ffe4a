package rules

import (
	"regexp"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/window"
)

// Patterns shared by several rules
var (
	entityClassPattern      = regexp.MustCompile(`@\s*Entity\b`)
	mappedSuperclassPattern = regexp.MustCompile(`@\s*MappedSuperclass\b`)
	interfacePattern        = regexp.MustCompile(`\binterface\s+\w+`)
	mappingAnnotation       = regexp.MustCompile(`^\s*@\s*(GetMapping|PostMapping|PutMapping|PatchMapping|DeleteMapping)\b`)
	queryAnnotation         = regexp.MustCompile(`^\s*@\s*Query\b`)
	primaryClassPattern     = regexp.MustCompile(`\bclass\s+([A-Z]\w*)\b`)
	classDeclaration        = regexp.MustCompile(`\bclass\s+([A-Z]\w*)\s*(?:extends\s+([A-Z]\w*))?`)
	auditFieldDeclaration   = regexp.MustCompile(`\b(createdAt|updatedAt|deletedAt|deleted|isDeleted)\b`)
	returnTypePattern       = regexp.MustCompile(`\bpublic\s+(?:default\s+)?(?:static\s+)?(?:final\s+)?([A-Za-z0-9_<>\[\], ?]+?)\s+[A-Za-z_][A-Za-z0-9_]*\s*\(`)
	methodNamePattern       = regexp.MustCompile(`\bpublic\s+(?:default\s+)?(?:static\s+)?(?:final\s+)?[A-Za-z0-9_<>\[\], ?]+\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

const (
	roleController = "controller"
	roleService    = "service"
	roleRepository = "repository"
	roleEntity     = "entity"
	roleDTO        = "dto"
	roleMapper     = "mapper"
	roleException  = "exception"
)

func isEntity(file *linter.FileContext) bool {
	return entityClassPattern.MatchString(file.Text)
}

// eachLine calls fn for every line with its 1-based number
func eachLine(file *linter.FileContext, fn func(number int, raw string)) {
	for index, raw := range file.Lines {
		fn(index+1, raw)
	}
}

// codeLine strips a trailing // comment and surrounding whitespace
func codeLine(raw string) string {
	return strings.TrimSpace(window.StripLineComment(raw))
}

func detectPrimaryClassName(lines []string) string {
	for _, raw := range lines {
		if match := primaryClassPattern.FindStringSubmatch(raw); match != nil {
			return match[1]
		}
	}
	return ""
}

// findClassDeclaration returns the first declared class and its superclass
func findClassDeclaration(lines []string) (name, extends string, ok bool) {
	for _, raw := range lines {
		if match := classDeclaration.FindStringSubmatch(raw); match != nil {
			return match[1], match[2], true
		}
	}
	return "", "", false
}

func findAuditFieldLines(lines []string) []window.Line {
	matches := make([]window.Line, 0)
	for index, raw := range lines {
		stripped := codeLine(raw)
		if stripped == "" {
			continue
		}
		if !auditFieldDeclaration.MatchString(stripped) {
			continue
		}
		if strings.Contains(stripped, "class ") {
			continue
		}
		matches = append(matches, window.Line{Number: index + 1, Text: raw})
	}
	return matches
}

// collectMethodSignature joins trimmed lines from startLine until one ends
// with "{" or ";".
func collectMethodSignature(lines []string, startLine, maxLines int) string {
	parts := make([]string, 0, maxLines)
	end := min(len(lines), startLine-1+maxLines)
	for index := startLine - 1; index < end; index++ {
		raw := strings.TrimSpace(lines[index])
		parts = append(parts, raw)
		if strings.HasSuffix(raw, "{") || strings.HasSuffix(raw, ";") {
			break
		}
	}
	return strings.Join(parts, " ")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractReturnType(signature string) string {
	match := returnTypePattern.FindStringSubmatch(normalizeSpace(signature))
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func extractMethodName(signature string) string {
	match := methodNamePattern.FindStringSubmatch(normalizeSpace(signature))
	if match == nil {
		return ""
	}
	return match[1]
}

// extractParamNames returns parameter names between the first "(" and the
// last ")", dropping annotations and the final modifier.
func extractParamNames(signature string) []string {
	normalized := normalizeSpace(signature)
	start := strings.Index(normalized, "(")
	end := strings.LastIndex(normalized, ")")
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	segment := strings.TrimSpace(normalized[start+1 : end])
	if segment == "" {
		return nil
	}

	names := make([]string, 0)
	for _, param := range strings.Split(segment, ",") {
		tokens := make([]string, 0)
		for _, token := range strings.Split(strings.TrimSpace(param), " ") {
			if token == "final" || strings.HasPrefix(token, "@") {
				continue
			}
			tokens = append(tokens, token)
		}
		if len(tokens) == 0 {
			continue
		}
		candidate := strings.TrimSpace(strings.ReplaceAll(tokens[len(tokens)-1], "...", ""))
		if candidate == "" {
			continue
		}
		names = append(names, candidate)
	}
	return names
}
