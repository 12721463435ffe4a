package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

var (
	annotationData     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	annotationProperty = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// WriteGitHubAnnotations emits one workflow command per violation so CI
// shows them inline on the diff
func WriteGitHubAnnotations(out io.Writer, violations []linter.Violation) error {
	for _, v := range violations {
		level := "error"
		if v.Severity == linter.SeverityWarning {
			level = "warning"
		}
		_, err := fmt.Fprintf(out, "::%s file=%s,line=%d::%s\n",
			level,
			annotationProperty.Replace(v.File),
			v.Line,
			annotationData.Replace("["+v.Rule+"] "+v.Reason),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
