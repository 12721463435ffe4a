package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/messages"
	"github.com/lumosapi/backend-guard/pkg/linter/report"
	"github.com/lumosapi/backend-guard/pkg/linter/rules"
)

var cleanService = strings.Join([]string{
	"package app.service;",
	"",
	"@Service",
	"@RequiredArgsConstructor",
	"public class TagService {",
	"  private final TagRepository repository;",
	"",
	"  /**",
	"   * Finds a tag label.",
	"   * @param id tag id",
	"   * @return the label",
	"   */",
	"  public String label(Long id) {",
	"    // missing tags have no label",
	"    if (StringUtils.isBlank(repository.label(id))) {",
	"      return StringUtils.EMPTY;",
	"    }",
	"    return StringUtils.trim(repository.label(id));",
	"  }",
	"}",
}, "\n") + "\n"

var entityWithoutID = strings.Join([]string{
	"package app.entity;",
	"",
	"@Entity",
	"@Getter",
	"@Setter",
	"public class Tag {",
	"  @Version",
	"  private Long version;",
	"}",
}, "\n") + "\n"

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// cleanProject creates a project without violations
func cleanProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/main/java/app/service/TagService.java", cleanService)
	writeFile(t, root, messages.DefaultPath, "# messages\ngreeting=Xin chào\n")
	return root
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func readReport(t *testing.T, root string) report.Payload {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "backend_guard_report.json"))
	require.NoError(t, err)

	var payload report.Payload
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "backend-guard", root.Name())

	expected := []string{"check", "rules", "watch", "init-config"}
	for _, name := range expected {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"root", "config", "strict", "format", "jobs", "color", "log-level", "metrics-file", "sort-by-location"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestCheck_NoSources(t *testing.T) {
	root := t.TempDir()

	code, stdout, _ := execute(t, "--root", root)
	assert.Equal(t, report.ExitFailed, code)
	assert.Equal(t, report.NoSourcesMessage+"\n", stdout)
	assert.NoFileExists(t, filepath.Join(root, "backend_guard_report.json"))
}

func TestCheck_Clean(t *testing.T) {
	root := cleanProject(t)

	for _, args := range [][]string{
		{"--root", root, "--color", "off"},
		{"check", "--root", root, "--color", "off"},
	} {
		code, stdout, stderr := execute(t, args...)
		assert.Equal(t, report.ExitOK, code)
		assert.Equal(t, "Backend checklist guard passed.\n", stdout)
		assert.Empty(t, stderr)
	}

	payload := readReport(t, root)
	assert.Equal(t, linter.Summary{}, payload.Summary)
	assert.Empty(t, payload.Violations)
}

func TestCheck_EntityWithoutID(t *testing.T) {
	root := cleanProject(t)
	writeFile(t, root, "src/main/java/app/entity/Tag.java", entityWithoutID)

	code, stdout, _ := execute(t, "--root", root, "--color", "off")
	assert.Equal(t, report.ExitFailed, code)
	assert.True(t, strings.HasPrefix(stdout, "Backend checklist guard failed. errors="))
	assert.Contains(t, stdout, "src/main/java/app/entity/Tag.java:1: [ERROR] ENTITY_HAS_ID - ")

	payload := readReport(t, root)
	assert.Positive(t, payload.Summary.Errors)
	assert.Equal(t, payload.Summary.Total, len(payload.Violations))
}

func TestCheck_StrictMode(t *testing.T) {
	root := cleanProject(t)
	writeFile(t, root, "backend-guard.yaml", "max_class_lines: 5\n")

	code, stdout, _ := execute(t, "--root", root, "--color", "off")
	assert.Equal(t, report.ExitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Backend checklist guard completed with warnings. warnings=1\n"))
	assert.Contains(t, stdout, "[WARN] CLASS_MAX_LINES - Class file exceeds 5 lines (found 20).")

	code, _, _ = execute(t, "--root", root, "--color", "off", "--strict")
	assert.Equal(t, report.ExitFailed, code)

	writeFile(t, root, "backend-guard.yaml", "max_class_lines: 5\nstrict: true\n")
	code, _, _ = execute(t, "--root", root, "--color", "off")
	assert.Equal(t, report.ExitFailed, code)

	code, _, _ = execute(t, "--root", root, "--color", "off", "--strict=false")
	assert.Equal(t, report.ExitOK, code)
}

func TestCheck_MissingMessagesBundle(t *testing.T) {
	root := cleanProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, filepath.FromSlash(messages.DefaultPath))))

	code, stdout, _ := execute(t, "--root", root, "--color", "off")
	assert.Equal(t, report.ExitFailed, code)
	assert.Contains(t, stdout, "src/main/resources/messages_vi.properties:1: [ERROR] VI_MESSAGES_MUST_BE_VIETNAMESE_ACCENTED - ")

	writeFile(t, root, "backend-guard.yaml", "rules:\n  VI_MESSAGES_MUST_BE_VIETNAMESE_ACCENTED: false\n")
	code, _, _ = execute(t, "--root", root)
	assert.Equal(t, report.ExitOK, code)
}

func TestCheck_Formats(t *testing.T) {
	root := cleanProject(t)
	writeFile(t, root, "src/main/java/app/entity/Tag.java", entityWithoutID)

	t.Run("json", func(t *testing.T) {
		code, stdout, _ := execute(t, "--root", root, "--format", "json")
		assert.Equal(t, report.ExitFailed, code)

		var payload report.Payload
		require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
		assert.Equal(t, readReport(t, root), payload)
	})

	t.Run("github", func(t *testing.T) {
		code, stdout, _ := execute(t, "--root", root, "--format", "github", "--color", "off")
		assert.Equal(t, report.ExitFailed, code)
		assert.Contains(t, stdout, "Backend checklist guard failed.")
		assert.Contains(t, stdout, "::error file=src/main/java/app/entity/Tag.java,line=1::[ENTITY_HAS_ID] ")
	})
}

func TestCheck_SortByLocation(t *testing.T) {
	root := cleanProject(t)
	writeFile(t, root, "src/main/java/app/entity/Tag.java", entityWithoutID)

	code, _, _ := execute(t, "--root", root, "--sort-by-location", "--jobs", "1")
	assert.Equal(t, report.ExitFailed, code)

	violations := readReport(t, root).Violations
	sorted := make([]linter.Violation, len(violations))
	copy(sorted, violations)
	linter.SortViolations(sorted)
	assert.Equal(t, sorted, violations)
}

func TestCheck_MetricsFile(t *testing.T) {
	root := cleanProject(t)
	path := filepath.Join(t.TempDir(), "backend_guard.prom")

	code, _, _ := execute(t, "--root", root, "--metrics-file", path)
	assert.Equal(t, report.ExitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend_guard_files_scanned_total 1")
}

func TestCheck_InternalErrors(t *testing.T) {
	root := cleanProject(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"bad format", []string{"--root", root, "--format", "xml"}, `invalid --format value "xml"`},
		{"bad color", []string{"--root", root, "--color", "always"}, `invalid --color value "always"`},
		{"missing config", []string{"--root", root, "--config", filepath.Join(root, "nope.yaml")}, "failed to load config"},
		{"negative jobs", []string{"--root", root, "--jobs", "-1"}, "jobs must not be negative"},
		{"root is a file", []string{"--root", filepath.Join(root, filepath.FromSlash(messages.DefaultPath))}, "project root is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, tt.args...)
			assert.Equal(t, report.ExitInternal, code)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
			assert.Contains(t, stderr, tt.message)
		})
	}
}

func TestRules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "backend-guard.yaml", "rules:\n  NO_ELSE_ALLOWED: false\n")

	code, stdout, _ := execute(t, "rules", "--root", root)
	require.Equal(t, report.ExitOK, code)

	assert.True(t, strings.HasPrefix(stdout, "Available rules (39):\n"))
	for _, heading := range []string{"Path-Gated Rules:", "Line-Local Rules:", "Window Rules:", "Aggregate Rules:"} {
		assert.Contains(t, stdout, heading)
	}
	for _, rule := range rules.DefaultRules() {
		assert.Contains(t, stdout, rule.Name())
	}
	assert.Contains(t, stdout, messages.RuleName)
	assert.Regexp(t, `NO_ELSE_ALLOWED\s+\[ERROR\] \[disabled\]`, stdout)
	assert.Less(t, strings.Index(stdout, "Path-Gated Rules:"), strings.Index(stdout, "Aggregate Rules:"))
}

func TestInitConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "backend-guard.yaml")

	code, stdout, _ := execute(t, "init-config", "--root", root)
	require.Equal(t, report.ExitOK, code)
	assert.Equal(t, "Created "+path+"\n", stdout)

	config, err := linter.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300, config.MaxClassLines)
	assert.Len(t, config.Rules, 39)
	assert.True(t, config.RuleEnabled(rules.RuleNoElse))

	code, _, stderr := execute(t, "init-config", "--root", root)
	assert.Equal(t, report.ExitInternal, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = execute(t, "init-config", "--root", root, "--force")
	assert.Equal(t, report.ExitOK, code)
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		mode     string
		expected bool
		wantErr  bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"auto", false, false},
		{"sometimes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			colored, err := useColor(tt.mode, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, colored)
		})
	}
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())

	inner := os.ErrNotExist
	err := &ExitError{Code: 2, Err: inner}
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGuard_ReusesRulesAcrossRuns(t *testing.T) {
	root := cleanProject(t)
	writeFile(t, root, "src/main/java/app/service/ClockService.java",
		"@Service\npublic class ClockService {\n  private final Clock clock;\n}\n")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--root", root, "--color", "off"}))

	g, err := newGuard(cmd)
	require.NoError(t, err)

	rule, ok := g.engine.Registry().GetRule(rules.RuleLombokRequiredArgsConstructor)
	require.True(t, ok)
	lombok, ok := rule.(*rules.LombokRequiredArgsConstructorRule)
	require.True(t, ok)

	for run := 0; run < 2; run++ {
		code, err := g.run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, report.ExitFailed, code)

		again, ok := g.engine.Registry().GetRule(rules.RuleLombokRequiredArgsConstructor)
		require.True(t, ok)
		assert.Same(t, lombok, again)
		assert.Equal(t, 1, lombok.CachedPatterns())
	}
}
