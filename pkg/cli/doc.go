// Package cli provides the backend-guard command-line interface.
//
// # Commands
//
// check (default): scan the project and write backend_guard_report.json
//
//	backend-guard --root ./lumos-api-service --strict
//	backend-guard check --format github --jobs 4
//
// rules: list the catalog grouped by category
//
//	backend-guard rules
//
// watch: re-run the check whenever a source or properties file changes
//
//	backend-guard watch --root . --color on
//
// init-config: write a default backend-guard.yaml
//
//	backend-guard init-config --root .
//
// # Exit Codes
//
//   - 0: no errors (and no warnings when --strict)
//   - 1: the guard failed, or no Java sources were found
//   - 2: the tool itself failed (bad flags, unreadable config, I/O errors)
//
// # Related Packages
//
//   - pkg/linter: engine, config and rule contracts
//   - pkg/linter/rules: the rule catalog
//   - pkg/linter/report: report file and console output
//   - pkg/workspace: source discovery
package cli
