package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumosapi/backend-guard/pkg/linter/report"
)

// Version is reported by --version
var Version = "dev"

// ExitError carries a process exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCommand creates the command tree. The root command runs check.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "backend-guard",
		Short:         "Spring Boot backend checklist guard",
		Long:          `backend-guard scans a Spring Boot + JPA project for violations of the backend conventions checklist`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	flags := root.PersistentFlags()
	flags.String("root", ".", "project root directory")
	flags.String("config", "", "path to config file (default: backend-guard.yaml in root)")
	flags.Bool("strict", false, "fail when warning violations exist")
	flags.String("format", "text", "output format (text|json|github)")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile")
	flags.Bool("sort-by-location", false, "sort violations by file, line and rule")

	root.AddCommand(newCheckCommand())
	root.AddCommand(newRulesCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newInitConfigCommand())

	return root
}

// Run executes the command tree with args and returns the process exit code
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return report.ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return report.ExitInternal
}

// Execute runs the CLI against the process arguments. It stops on SIGINT or
// SIGTERM.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// useColor resolves the --color flag against the output writer
func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (auto|on|off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
