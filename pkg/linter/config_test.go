package linter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if config.Version != "v1" {
		t.Errorf("Expected version v1, got %s", config.Version)
	}

	if len(config.SourceRoots) != 2 || config.SourceRoots[0] != "src/main/java" || config.SourceRoots[1] != "src/test/java" {
		t.Errorf("Unexpected source roots %v", config.SourceRoots)
	}

	if config.ReportFile != "backend_guard_report.json" {
		t.Errorf("Expected report file backend_guard_report.json, got %s", config.ReportFile)
	}

	if config.MaxClassLines != 300 {
		t.Errorf("Expected max class lines 300, got %d", config.MaxClassLines)
	}

	if config.Strict {
		t.Error("Expected strict to default to false")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `version: v1
strict: true
max_class_lines: 400
jobs: 4
sort_by_location: true
rules:
  NO_ELSE_ALLOWED: false
  ENTITY_HAS_ID: true
ignore:
  - "src/main/java/**/generated/**"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Strict {
		t.Error("Expected strict to be enabled")
	}

	if config.MaxClassLines != 400 {
		t.Errorf("Expected max class lines 400, got %d", config.MaxClassLines)
	}

	if config.Jobs != 4 || !config.SortByLocation {
		t.Errorf("Expected jobs=4 and sort_by_location, got jobs=%d sort=%v", config.Jobs, config.SortByLocation)
	}

	if config.RuleEnabled("NO_ELSE_ALLOWED") {
		t.Error("Expected NO_ELSE_ALLOWED to be disabled")
	}

	if !config.RuleEnabled("ENTITY_HAS_ID") || !config.RuleEnabled("CLASS_MAX_LINES") {
		t.Error("Expected unlisted and enabled rules to run")
	}

	// keys missing from the file keep their defaults
	if config.Extension != ".java" || len(config.SourceRoots) != 2 {
		t.Errorf("Expected defaults to survive, got extension=%q roots=%v", config.Extension, config.SourceRoots)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidContent := `version: v1
source_roots: [invalid yaml content
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")

	content := `extension: java
max_class_lines: 0
jobs: -1
ignore:
  - "src/[unclosed"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	for _, fragment := range []string{"extension", "max_class_lines", "jobs", "ignore pattern"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("Expected error to mention %q, got %v", fragment, err)
		}
	}
}

func TestConfig_IsIgnored(t *testing.T) {
	config := DefaultConfig()
	config.Ignore = []string{"src/main/java/**/generated/**", "src/test/java/**/*IT.java"}

	tests := []struct {
		path    string
		ignored bool
	}{
		{"src/main/java/app/generated/Q.java", true},
		{"src/main/java/app/deep/generated/x/Q.java", true},
		{"src/test/java/app/UserIT.java", true},
		{"src/test/java/app/UserTest.java", false},
		{"src/main/java/app/User.java", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := config.IsIgnored(tt.path); got != tt.ignored {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}

func TestLoadConfigFromDir_AlternativeNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"backend-guard.yaml", "backend-guard.yaml"},
		{"backend-guard.yml", "backend-guard.yml"},
		{".backend-guard.yaml", ".backend-guard.yaml"},
		{".backend-guard.yml", ".backend-guard.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)

			configContent := `version: test-version`
			if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			config, err := LoadConfigFromDir(tmpDir)
			if err != nil {
				t.Fatalf("LoadConfigFromDir() failed: %v", err)
			}

			if config.Version != "test-version" {
				t.Errorf("Expected version 'test-version', got %s", config.Version)
			}
		})
	}
}

func TestLoadConfigFromDir_NoConfigReturnsDefault(t *testing.T) {
	tmpDir := t.TempDir()

	config, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() failed: %v", err)
	}

	if config.Version != "v1" {
		t.Errorf("Expected default version v1, got %s", config.Version)
	}

	if config.MessagesFile != "src/main/resources/messages_vi.properties" {
		t.Errorf("Expected default messages file, got %s", config.MessagesFile)
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved-config.yaml")

	config := DefaultConfig()
	config.Version = "v2"
	config.MaxClassLines = 250
	config.Rules["NO_ELSE_ALLOWED"] = false

	err := SaveConfig(config, configPath)
	if err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loadedConfig.Version != "v2" {
		t.Errorf("Expected version v2, got %s", loadedConfig.Version)
	}

	if loadedConfig.MaxClassLines != 250 {
		t.Errorf("Expected max class lines 250, got %d", loadedConfig.MaxClassLines)
	}

	if loadedConfig.RuleEnabled("NO_ELSE_ALLOWED") {
		t.Error("Expected NO_ELSE_ALLOWED to stay disabled")
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	config := DefaultConfig()

	err := SaveConfig(config, "/nonexistent/directory/config.yaml")
	if err == nil {
		t.Error("Expected error when saving to invalid path, got nil")
	}
}
