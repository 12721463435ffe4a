package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/lumosapi/backend-guard/pkg/linter/messages"
	"github.com/lumosapi/backend-guard/pkg/linter/rules"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the checklist rules grouped by category",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("failed to get root flag: %w", err)
	}
	config, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	registry := linter.NewRuleRegistry()
	rules.RegisterDefaultRules(registry, config)

	return writeRuleList(cmd.OutOrStdout(), registry, config, messages.NewChecker(config.MessagesFile))
}

func writeRuleList(out io.Writer, registry *linter.RuleRegistry, config *linter.Config, extra ...linter.Metadata) error {
	byCategory := make(map[linter.Category][]linter.Metadata)
	for _, cat := range linter.Categories() {
		byCategory[cat] = registry.GetRulesByCategory(cat)
	}
	for _, rule := range extra {
		byCategory[rule.Category()] = append(byCategory[rule.Category()], rule)
	}

	if _, err := fmt.Fprintf(out, "Available rules (%d):\n\n", registry.Len()+len(extra)); err != nil {
		return err
	}

	title := cases.Title(language.English)
	for _, cat := range linter.Categories() {
		list := byCategory[cat]
		if len(list) == 0 {
			continue
		}

		fmt.Fprintf(out, "%s Rules:\n", title.String(string(cat)))
		for _, rule := range list {
			disabled := ""
			if !config.RuleEnabled(rule.Name()) {
				disabled = " [disabled]"
			}
			fmt.Fprintf(out, "  - %-50s [%s]%s\n    %s\n",
				rule.Name(),
				rule.Severity(),
				disabled,
				rule.Description(),
			)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}

	return nil
}
