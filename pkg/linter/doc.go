// Package linter provides the rule-evaluation engine for Spring Boot + JPA
// backend conventions.
//
// # Overview
//
// The engine works on raw source text. There is no Java parser: every rule is
// a best-effort pattern match over the lines of one file, guided by the line
// window helpers in pkg/linter/window. A line can be misclassified when a
// construct spans lines or is commented out; results are defined relative to
// that approximate model.
//
// # Model
//
// FileContext: immutable view of one source file (path, relative path, text, lines)
// ProjectContext: every FileContext of the run, sorted by relative path, plus run flags
// Rule: evaluated once per file, returns zero or more Violations
// ProjectRule: evaluated once per run over the whole ProjectContext
//
// # Rule Categories
//
// Path-gated: gate on directory role, then require or forbid a marker construct
// Line-local: scan every line independently for a token pattern
// Window: a trigger line requires a companion marker in a bounded window
// Aggregate: project-wide checks evaluated once per run
//
// # Usage Example
//
//	config := linter.DefaultConfig()
//	engine := linter.NewLintEngine(config)
//	rules.RegisterDefaultRules(engine.Registry(), config)
//
//	result, err := engine.Run(ctx, project)
//	if err != nil {
//		return err
//	}
//	summary := linter.GenerateSummary(result.Violations)
//	fmt.Printf("errors=%d, warnings=%d\n", summary.Errors, summary.Warnings)
//
// # Related Packages
//
//   - pkg/linter/rules: The rule catalog
//   - pkg/linter/window: Line window primitives
//   - pkg/linter/messages: Localized message resource check
//   - pkg/linter/report: Report payload and console formatters
//   - pkg/workspace: Source discovery
package linter
