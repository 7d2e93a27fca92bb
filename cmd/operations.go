package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/catalog"
	"github.com/vietdv277/rdsctl/internal/invoke"
	"github.com/vietdv277/rdsctl/internal/ui"
)

func newOperationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List the RDS operations rdsctl can run",
		Long: `List every RDS operation available under "rdsctl rds", with its impact
and the response field printed by default.

Operations at or above the confirmation threshold (--confirm-impact, default
high) ask before sending the request.

Examples:
  rdsctl operations`,
		Args: positionalArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := catalog.All()
			rows := make([][]string, len(ops))
			for i, op := range ops {
				spec := op.Spec()
				out := spec.Output
				if out == "" {
					out = "-"
				}
				rows[i] = []string{spec.Command(), spec.Name, spec.Impact.String(), out}
			}

			tb := ui.Table{
				Headers: []string{"COMMAND", "OPERATION", "IMPACT", "DEFAULT OUTPUT"},
				Rows:    rows,
				Style: func(t ui.Theme, col int, value string) lipgloss.Style {
					switch col {
					case 0:
						return t.Name
					case 2:
						impact, _ := invoke.ParseImpact(value)
						return t.Impact(impact)
					case 3:
						return t.Muted
					}
					return t.Value
				},
				Summary: fmt.Sprintf("%d operations", len(ops)),
			}
			return tb.Render(a.stdout)
		},
	}
}
