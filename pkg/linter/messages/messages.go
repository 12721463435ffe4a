// Package messages checks the Vietnamese message bundle that sits next to the
// Java sources. It is the only check that reads a non-source file.
package messages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

// RuleName identifies message bundle violations
const RuleName = "VI_MESSAGES_MUST_BE_VIETNAMESE_ACCENTED"

// DefaultPath is the bundle location relative to the project root
const DefaultPath = "src/main/resources/messages_vi.properties"

const accented = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ" +
	"ÀÁẠẢÃÂẦẤẬẨẪĂẰẮẶẲẴÈÉẸẺẼÊỀẾỆỂỄÌÍỊỈĨÒÓỌỎÕÔỒỐỘỔỖƠỜỚỢỞỠÙÚỤỦŨƯỪỨỰỬỮỲÝỴỶỸĐ"

// Checker validates one properties bundle
type Checker struct {
	// RelPath is slash-separated and relative to the project root
	RelPath string
}

// NewChecker creates a checker for relPath, or DefaultPath when empty
func NewChecker(relPath string) *Checker {
	if relPath == "" {
		relPath = DefaultPath
	}
	return &Checker{RelPath: filepath.ToSlash(relPath)}
}

func (c *Checker) Name() string { return RuleName }

func (c *Checker) Category() linter.Category { return linter.CategoryLineLocal }

func (c *Checker) Severity() linter.Severity { return linter.SeverityError }

func (c *Checker) Description() string {
	return "Vietnamese message values must contain accented characters"
}

// Check reads the bundle under root. A missing bundle is a violation, any
// other read failure is an error.
func (c *Checker) Check(root string) ([]linter.Violation, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(c.RelPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return []linter.Violation{c.missing()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.RelPath, err)
	}
	return c.CheckText(string(data)), nil
}

// CheckText validates bundle content already in memory
func (c *Checker) CheckText(text string) []linter.Violation {
	violations := make([]linter.Violation, 0)
	for index, raw := range linter.SplitLines(text) {
		stripped := strings.TrimSpace(raw)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		_, value, ok := strings.Cut(stripped, "=")
		if !ok {
			continue
		}
		value = norm.NFC.String(strings.TrimSpace(value))
		if value == "" || !hasLetter(value) || strings.ContainsAny(value, accented) {
			continue
		}
		violations = append(violations, linter.Violation{
			Rule:     RuleName,
			Severity: linter.SeverityError,
			File:     c.RelPath,
			Line:     index + 1,
			Reason:   "Vietnamese message must contain accented Vietnamese characters.",
			Snippet:  stripped,
		})
	}
	return violations
}

func (c *Checker) missing() linter.Violation {
	return linter.Violation{
		Rule:     RuleName,
		Severity: linter.SeverityError,
		File:     c.RelPath,
		Line:     1,
		Reason:   "Missing " + path.Base(c.RelPath) + ".",
		Snippet:  path.Base(c.RelPath),
	}
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
