package report

import "github.com/lumosapi/backend-guard/pkg/linter"

// Process exit codes
const (
	ExitOK       = 0
	ExitFailed   = 1
	ExitInternal = 2
)

// ExitCode is ExitFailed when any violation is an error, or when strict and
// any violation exists
func ExitCode(violations []linter.Violation, strict bool) int {
	for _, v := range violations {
		if v.Severity == linter.SeverityError {
			return ExitFailed
		}
	}
	if strict && len(violations) > 0 {
		return ExitFailed
	}
	return ExitOK
}
