package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/messages"
	"github.com/lumosapi/backend-guard/pkg/linter/rules"
)

func newInitConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default backend-guard.yaml to the project root",
		Long: `Write backend-guard.yaml with the default settings and every rule listed
as enabled, ready to be edited.`,
		Args: cobra.NoArgs,
		RunE: runInitConfig,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("failed to get root flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	path := filepath.Join(root, linter.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	config := linter.DefaultConfig()
	for _, rule := range rules.DefaultRules() {
		config.Rules[rule.Name()] = true
	}
	for _, rule := range rules.ProjectRules() {
		config.Rules[rule.Name()] = true
	}
	config.Rules[messages.RuleName] = true

	if err := linter.SaveConfig(config, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
