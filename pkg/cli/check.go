package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/messages"
	"github.com/lumosapi/backend-guard/pkg/linter/report"
	"github.com/lumosapi/backend-guard/pkg/linter/rules"
	"github.com/lumosapi/backend-guard/pkg/observability"
	"github.com/lumosapi/backend-guard/pkg/workspace"
)

// Output formats accepted by --format
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatGitHub = "github"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the project against the backend checklist",
		Long: `Scan src/main/java and src/test/java, print a summary, and write
backend_guard_report.json in the project root.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := newGuard(cmd)
	if err != nil {
		return err
	}

	code, err := g.run(cmd.Context())
	if err != nil {
		return err
	}
	if code != report.ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

// guard holds everything a check run needs; watch reuses it across runs so
// rule state such as the constructor pattern cache survives between runs
type guard struct {
	root        string
	config      *linter.Config
	engine      *linter.LintEngine
	format      string
	metricsFile string
	out         io.Writer
	printer     *report.Printer
	log         *logrus.Logger
}

func newGuard(cmd *cobra.Command) (*guard, error) {
	flags := cmd.Flags()

	root, err := flags.GetString("root")
	if err != nil {
		return nil, fmt.Errorf("failed to get root flag: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	format, err := flags.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case FormatText, FormatJSON, FormatGitHub:
	default:
		return nil, fmt.Errorf("invalid --format value %q (text|json|github)", format)
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	out := cmd.OutOrStdout()
	colored, err := useColor(colorMode, out)
	if err != nil {
		return nil, err
	}

	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	metricsFile, err := flags.GetString("metrics-file")
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics-file flag: %w", err)
	}

	config, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}

	log := observability.NewLogger(logLevel, cmd.ErrOrStderr())
	engine := linter.NewLintEngine(config)
	engine.SetLogger(log)
	rules.RegisterDefaultRules(engine.Registry(), config)

	return &guard{
		root:        root,
		config:      config,
		engine:      engine,
		format:      format,
		metricsFile: metricsFile,
		out:         out,
		printer:     report.NewPrinter(out, colored),
		log:         log,
	}, nil
}

// loadConfig reads --config or the config file in root, then applies the
// flags the user set explicitly
func loadConfig(cmd *cobra.Command, root string) (*linter.Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var config *linter.Config
	if path != "" {
		config, err = linter.LoadConfig(path)
	} else {
		config, err = linter.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("strict") {
		if config.Strict, err = flags.GetBool("strict"); err != nil {
			return nil, fmt.Errorf("failed to get strict flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if config.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("sort-by-location") {
		if config.SortByLocation, err = flags.GetBool("sort-by-location"); err != nil {
			return nil, fmt.Errorf("failed to get sort-by-location flag: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// run performs one full check and returns the exit code it maps to
func (g *guard) run(ctx context.Context) (int, error) {
	log := g.log.WithField("run_id", uuid.NewString())

	project, err := workspace.Load(g.root, g.config, g.config.Strict)
	if err != nil {
		return report.ExitInternal, fmt.Errorf("failed to discover sources: %w", err)
	}
	log.WithField("files", len(project.Files)).Debug("discovered sources")

	if len(project.Files) == 0 {
		fmt.Fprintln(g.out, report.NoSourcesMessage)
		return report.ExitFailed, nil
	}

	metrics := observability.NewMetrics()
	g.engine.SetRecorder(metrics)

	result, err := g.engine.Run(ctx, project)
	if err != nil {
		return report.ExitInternal, err
	}
	violations := result.Violations

	if g.config.RuleEnabled(messages.RuleName) {
		found, err := messages.NewChecker(g.config.MessagesFile).Check(project.Root)
		if err != nil {
			return report.ExitInternal, err
		}
		for _, v := range found {
			metrics.ObserveViolation(v.Rule, string(v.Severity))
		}
		violations = append(violations, found...)
		if g.config.SortByLocation {
			linter.SortViolations(violations)
		}
	}

	if err := report.WriteReport(g.reportPath(), violations); err != nil {
		return report.ExitInternal, err
	}
	if err := g.render(violations); err != nil {
		return report.ExitInternal, fmt.Errorf("failed to write output: %w", err)
	}
	if g.metricsFile != "" {
		if err := metrics.WriteTextfile(g.metricsFile); err != nil {
			return report.ExitInternal, err
		}
	}

	summary := linter.GenerateSummary(violations)
	log.WithFields(logrus.Fields{
		"errors":   summary.Errors,
		"warnings": summary.Warnings,
		"duration": result.Duration,
	}).Debug("guard run finished")

	return report.ExitCode(violations, project.Strict), nil
}

func (g *guard) reportPath() string {
	if filepath.IsAbs(g.config.ReportFile) {
		return g.config.ReportFile
	}
	return filepath.Join(g.root, filepath.FromSlash(g.config.ReportFile))
}

func (g *guard) render(violations []linter.Violation) error {
	switch g.format {
	case FormatJSON:
		data, err := report.Encode(report.BuildPayload(violations))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(g.out, "%s\n", data)
		return err
	case FormatGitHub:
		if err := g.printer.Print(violations); err != nil {
			return err
		}
		return report.WriteGitHubAnnotations(g.out, violations)
	default:
		return g.printer.Print(violations)
	}
}
