// Package window provides the line lookahead and lookbehind primitives every
// rule is built from. Line numbers are 1-based; slices are 0-based.
package window

import (
	"regexp"
	"strings"
)

// Line is a line number paired with its raw text
type Line struct {
	Number int
	Text   string
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ForwardNonBlank returns up to limit non-blank lines strictly after
// fromLine, in file order.
func ForwardNonBlank(lines []string, fromLine, limit int) []Line {
	results := make([]Line, 0, max(limit, 0))
	for index := max(fromLine, 0); index < len(lines); index++ {
		if isBlank(lines[index]) {
			continue
		}
		results = append(results, Line{Number: index + 1, Text: lines[index]})
		if len(results) >= limit {
			break
		}
	}
	return results
}

// BackwardNonBlank returns up to limit non-blank lines strictly before
// fromLine, nearest first.
func BackwardNonBlank(lines []string, fromLine, limit int) []Line {
	results := make([]Line, 0, max(limit, 0))
	for index := min(fromLine-2, len(lines)-1); index >= 0; index-- {
		if isBlank(lines[index]) {
			continue
		}
		results = append(results, Line{Number: index + 1, Text: lines[index]})
		if len(results) >= limit {
			break
		}
	}
	return results
}

// CollectBlock joins lines from startLine until parenthesis depth returns to
// zero after at least one "(" was seen, or maxLines are consumed. When the
// first line opens no parenthesis the block is that line alone.
func CollectBlock(lines []string, startLine, maxLines int) string {
	parts := make([]string, 0, max(maxLines, 0))
	depth := 0
	seenParen := false
	first := startLine - 1
	end := min(len(lines), first+maxLines)
	for index := max(first, 0); index < end; index++ {
		line := lines[index]
		parts = append(parts, line)
		opens := strings.Count(line, "(")
		depth += opens - strings.Count(line, ")")
		if opens > 0 {
			seenParen = true
		}
		if seenParen && depth <= 0 {
			break
		}
		if !seenParen {
			break
		}
	}
	return strings.Join(parts, " ")
}

// lookback iterates trimmed lines above startLine, at most maxLookback of them
func lookback(lines []string, startLine, maxLookback int, visit func(trimmed string) bool) {
	startIndex := min(startLine-2, len(lines)-1)
	endIndex := max(-1, startLine-2-maxLookback)
	for index := startIndex; index > endIndex; index-- {
		if !visit(strings.TrimSpace(lines[index])) {
			return
		}
	}
}

// HasDocCommentAbove reports whether the nearest substantive line above
// startLine opens a /** block. Blank lines, comment continuation lines and
// annotation lines are skipped.
func HasDocCommentAbove(lines []string, startLine, maxLookback int) bool {
	found := false
	lookback(lines, startLine, maxLookback, func(raw string) bool {
		switch {
		case raw == "":
			return true
		case strings.HasPrefix(raw, "/**"):
			found = true
			return false
		case strings.HasPrefix(raw, "*"), strings.HasPrefix(raw, "@"):
			return true
		}
		return false
	})
	return found
}

// HasLineCommentAbove reports whether the nearest substantive line above
// startLine is a // comment. Blank lines and annotation lines are skipped.
func HasLineCommentAbove(lines []string, startLine, maxLookback int) bool {
	found := false
	lookback(lines, startLine, maxLookback, func(raw string) bool {
		switch {
		case raw == "":
			return true
		case strings.HasPrefix(raw, "//"):
			found = true
			return false
		case strings.HasPrefix(raw, "@"):
			return true
		}
		return false
	})
	return found
}

// ExtractDocCommentAbove returns the doc comment above startLine, trimmed
// lines joined top to bottom, or "" when ordinary code comes first.
func ExtractDocCommentAbove(lines []string, startLine, maxLookback int) string {
	parts := make([]string, 0)
	inDoc := false
	aborted := false
	lookback(lines, startLine, maxLookback, func(raw string) bool {
		switch {
		case raw == "":
			return true
		case strings.HasPrefix(raw, "/**"):
			parts = append(parts, raw)
			inDoc = true
			return false
		case strings.HasPrefix(raw, "*"):
			parts = append(parts, raw)
			inDoc = true
			return true
		case strings.HasPrefix(raw, "@"):
			return true
		case inDoc:
			return true
		}
		aborted = true
		return false
	})
	if aborted || !inDoc {
		return ""
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "\n")
}

// StripLineComment cuts the line at the first "//"
func StripLineComment(line string) string {
	if index := strings.Index(line, "//"); index >= 0 {
		return line[:index]
	}
	return line
}

// IndentLevel measures leading indentation; a tab counts as four spaces
func IndentLevel(line string) int {
	count := 0
	for _, char := range line {
		switch char {
		case ' ':
			count++
		case '\t':
			count += 4
		default:
			return count
		}
	}
	return count
}

// FirstLineContaining returns the 1-based number of the first line containing
// token, or -1.
func FirstLineContaining(lines []string, token string) int {
	for index, raw := range lines {
		if strings.Contains(raw, token) {
			return index + 1
		}
	}
	return -1
}

// FirstLineContainingAny returns the first line containing any token, or -1
func FirstLineContainingAny(lines []string, tokens []string) int {
	for index, raw := range lines {
		for _, token := range tokens {
			if strings.Contains(raw, token) {
				return index + 1
			}
		}
	}
	return -1
}

// FirstLineMatching returns the first line matching pattern, or -1
func FirstLineMatching(lines []string, pattern *regexp.Regexp) int {
	for index, raw := range lines {
		if pattern.MatchString(raw) {
			return index + 1
		}
	}
	return -1
}

// LineForOffset maps a byte offset in text to its 1-based line number
func LineForOffset(text string, offset int) int {
	if offset < 0 || offset > len(text) {
		return 1
	}
	return strings.Count(text[:offset], "\n") + 1
}
