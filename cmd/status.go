package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current context and authentication status",
		Long: `Display the effective settings (context, profile, region, endpoint) and
verify the credentials with an STS GetCallerIdentity call.

Examples:
  rdsctl status
  rdsctl --context staging status`,
		Args: positionalArgs(0),
		RunE: a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, args []string) error {
	s, err := a.settings()
	if err != nil {
		return err
	}

	t := ui.NewTheme(a.stdout)
	w := a.stdout

	fmt.Fprintln(w, "Current Status")
	fmt.Fprintln(w, t.Muted.Render("─────────────────────────────────"))
	fmt.Fprintln(w)

	if s.Context == "" {
		fmt.Fprintln(w, "Context:  "+t.Muted.Render("(not set)"))
	} else {
		fmt.Fprintf(w, "Context:  %s\n", t.Header.Render(s.Context))
	}
	fmt.Fprintf(w, "Profile:  %s\n", dash(s.Profile))
	fmt.Fprintf(w, "Region:   %s\n", dash(s.Region))
	if s.EndpointURL != "" {
		fmt.Fprintf(w, "Endpoint: %s\n", s.EndpointURL)
	}
	fmt.Fprintf(w, "Confirm:  impact %s and above\n", s.ConfirmImpact)
	fmt.Fprintln(w)

	fmt.Fprint(w, "Auth:     ")
	clients, err := a.clientsFor(cmd.Context(), s)
	if err != nil {
		fmt.Fprintln(w, t.Error.Render("✗ Not configured"))
		return err
	}
	identity, err := aws.GetCallerIdentity(cmd.Context(), clients.STS)
	if err != nil {
		fmt.Fprintln(w, t.Error.Render("✗ Not authenticated"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "To authenticate:")
		if s.Profile != "" {
			fmt.Fprintf(w, "  aws sso login --profile %s\n", s.Profile)
		} else {
			fmt.Fprintln(w, "  aws configure")
		}
		return fmt.Errorf("failed to get caller identity: %w", err)
	}

	fmt.Fprintln(w, t.Current.Render("✓ Authenticated"))
	fmt.Fprintf(w, "Account:  %s\n", identity.Account)
	fmt.Fprintf(w, "User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Fprintf(w, "ARN:      %s\n", t.Muted.Render(identity.Arn))
	}
	return nil
}
