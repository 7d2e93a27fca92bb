package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/config"
	"github.com/vietdv277/rdsctl/internal/ui"
)

func newContextsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "contexts",
		Aliases: []string{"ctx"},
		Short:   "List all configured contexts",
		Long: `List all configured contexts.

The current active context is marked with an asterisk (*).

Examples:
  rdsctl contexts
  rdsctl ctx`,
		Args: positionalArgs(0),
		RunE: a.runContexts,
	}
}

func (a *app) runContexts(cmd *cobra.Command, args []string) error {
	file, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}

	if len(file.Contexts) == 0 {
		fmt.Fprintln(a.stdout, "No contexts configured.")
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Add a context with:")
		fmt.Fprintln(a.stdout, "  rdsctl use add prod --profile <profile> --region <region>")
		return nil
	}

	names := file.Names()
	rows := make([][]string, len(names))
	for i, name := range names {
		ctx := file.Contexts[name]
		marker := ""
		if name == file.CurrentContext {
			marker = "*"
		}
		rows[i] = []string{marker, name, dash(ctx.Profile), dash(ctx.Region), dash(ctx.EndpointURL)}
	}

	summary := fmt.Sprintf("%d contexts configured", len(names))
	if file.CurrentContext != "" {
		summary += ", current: " + file.CurrentContext
	}

	tb := ui.Table{
		Headers: []string{"", "CONTEXT", "PROFILE", "REGION", "ENDPOINT"},
		Rows:    rows,
		Style: func(t ui.Theme, col int, value string) lipgloss.Style {
			switch col {
			case 0:
				return t.Current
			case 1:
				return t.Name
			}
			return t.Muted
		},
		Summary: summary,
	}
	return tb.Render(a.stdout)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
