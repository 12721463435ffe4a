package linter

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Recorder receives run measurements. observability.Metrics implements it.
type Recorder interface {
	ObserveFiles(count int)
	ObserveRule(rule string, duration time.Duration)
	ObserveViolation(rule, severity string)
	ObserveRun(duration time.Duration)
}

// LintEngine orchestrates the linting process
type LintEngine struct {
	config   *Config
	registry *RuleRegistry
	recorder Recorder
	log      *logrus.Logger
}

// NewLintEngine creates a new lint engine
func NewLintEngine(config *Config) *LintEngine {
	if config == nil {
		config = DefaultConfig()
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	return &LintEngine{
		config:   config,
		registry: NewRuleRegistry(),
		log:      log,
	}
}

// Registry returns the rule registry
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// Config returns the engine configuration
func (e *LintEngine) Config() *Config {
	return e.config
}

// SetRecorder attaches a measurement sink
func (e *LintEngine) SetRecorder(recorder Recorder) {
	e.recorder = recorder
}

// SetLogger replaces the engine logger
func (e *LintEngine) SetLogger(log *logrus.Logger) {
	if log != nil {
		e.log = log
	}
}

// Lint runs all enabled file rules against one file, in catalog order
func (e *LintEngine) Lint(file *FileContext, project *ProjectContext) LintResult {
	result := LintResult{
		FilePath:   file.RelPath,
		Violations: make([]Violation, 0),
	}

	for _, rule := range e.registry.GetEnabledRules(e.config) {
		start := time.Now()
		violations := rule.Check(file, project)
		if e.recorder != nil {
			e.recorder.ObserveRule(rule.Name(), time.Since(start))
		}
		result.Violations = append(result.Violations, violations...)
	}

	return result
}

// Run evaluates every file against every enabled rule, then every enabled
// project rule once. Files are linted in parallel but results keep the
// sequential order: files by relative path, rules by catalog position.
func (e *LintEngine) Run(ctx context.Context, project *ProjectContext) (RunResult, error) {
	start := time.Now()

	jobs := e.config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]LintResult, len(project.Files))
	if len(project.Files) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(project.Files)))

		for i, file := range project.Files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = e.Lint(file, project)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return RunResult{}, fmt.Errorf("failed to lint files: %w", err)
		}
	}

	violations := make([]Violation, 0)
	for _, result := range results {
		violations = append(violations, result.Violations...)
	}

	for _, rule := range e.registry.GetEnabledProjectRules(e.config) {
		ruleStart := time.Now()
		found := rule.CheckProject(project)
		if e.recorder != nil {
			e.recorder.ObserveRule(rule.Name(), time.Since(ruleStart))
		}
		violations = append(violations, found...)
	}

	if e.config.SortByLocation {
		SortViolations(violations)
	}

	duration := time.Since(start)
	if e.recorder != nil {
		e.recorder.ObserveFiles(len(project.Files))
		for _, v := range violations {
			e.recorder.ObserveViolation(v.Rule, string(v.Severity))
		}
		e.recorder.ObserveRun(duration)
	}

	e.log.WithFields(logrus.Fields{
		"files":      len(project.Files),
		"violations": len(violations),
		"jobs":       jobs,
		"duration":   duration,
	}).Debug("lint run finished")

	return RunResult{
		Files:      results,
		Violations: violations,
		Duration:   duration,
	}, nil
}

// SortViolations orders violations by file, line, then rule name. The sort
// is stable so equal keys keep their catalog order.
func SortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// GenerateSummary counts violations by severity
func GenerateSummary(violations []Violation) Summary {
	summary := Summary{Total: len(violations)}
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		}
	}
	return summary
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath   string
	Violations []Violation
}

// RunResult contains the result of a whole run
type RunResult struct {
	Files      []LintResult
	Violations []Violation
	Duration   time.Duration
}

// Violation represents one detected convention breach
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Reason   string   `json:"reason"`
	Snippet  string   `json:"snippet"`
}

// String renders the console form of a violation
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: [%s] %s - %s :: %s", v.File, v.Line, v.Severity, v.Rule, v.Reason, v.Snippet)
}

// Severity indicates how serious a violation is
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARN"
)

// Category groups rules by evaluation shape
type Category string

const (
	CategoryPathGated Category = "path-gated"
	CategoryLineLocal Category = "line-local"
	CategoryWindow    Category = "window"
	CategoryAggregate Category = "aggregate"
)

// Categories lists every category in display order
func Categories() []Category {
	return []Category{CategoryPathGated, CategoryLineLocal, CategoryWindow, CategoryAggregate}
}

// Summary provides an overview of a run
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}
