// Package report renders a run's violations: the JSON report file, the
// console summary, and CI annotations.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

// Payload is the JSON report document
type Payload struct {
	Summary    linter.Summary     `json:"summary"`
	Violations []linter.Violation `json:"violations"`
}

// BuildPayload derives the summary and never leaves violations nil
func BuildPayload(violations []linter.Violation) Payload {
	if violations == nil {
		violations = make([]linter.Violation, 0)
	}
	return Payload{
		Summary:    linter.GenerateSummary(violations),
		Violations: violations,
	}
}

// Encode renders the payload with two-space indentation and every non-ASCII
// rune escaped as \uXXXX. There is no trailing newline.
func Encode(payload Payload) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// WriteReport overwrites path with the encoded report
func WriteReport(path string, violations []linter.Violation) error {
	data, err := Encode(BuildPayload(violations))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// escapeNonASCII rewrites multi-byte UTF-8 sequences as JSON \u escapes;
// runes outside the BMP become surrogate pairs.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf {
			out = append(out, data[0])
			data = data[1:]
			continue
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r >= 0x10000 {
			high, low := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, high, low)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
