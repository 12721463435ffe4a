package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

const (
	passedMessage = "Backend checklist guard passed."
	// NoSourcesMessage is printed when discovery finds nothing to check
	NoSourcesMessage = "No Java files found under src/main/java or src/test/java."
)

// Printer writes the human readable summary
type Printer struct {
	out      io.Writer
	errorTag *color.Color
	warnTag  *color.Color
}

// NewPrinter creates a printer; useColor toggles ANSI severity tags
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		errorTag: color.New(color.FgRed, color.Bold),
		warnTag:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.errorTag, p.warnTag} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Headline returns the first summary line
func Headline(violations []linter.Violation) string {
	if len(violations) == 0 {
		return passedMessage
	}
	summary := linter.GenerateSummary(violations)
	if summary.Errors > 0 {
		return fmt.Sprintf("Backend checklist guard failed. errors=%d, warnings=%d", summary.Errors, summary.Warnings)
	}
	return fmt.Sprintf("Backend checklist guard completed with warnings. warnings=%d", summary.Warnings)
}

// Print writes the headline followed by one line per violation
func (p *Printer) Print(violations []linter.Violation) error {
	var b strings.Builder
	b.WriteString(Headline(violations))
	b.WriteByte('\n')
	for _, v := range violations {
		b.WriteString(p.line(v))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *Printer) line(v linter.Violation) string {
	tag := "[" + string(v.Severity) + "]"
	switch v.Severity {
	case linter.SeverityError:
		tag = p.errorTag.Sprint(tag)
	case linter.SeverityWarning:
		tag = p.warnTag.Sprint(tag)
	}
	return fmt.Sprintf("%s:%d: %s %s - %s :: %s", v.File, v.Line, tag, v.Rule, v.Reason, v.Snippet)
}
