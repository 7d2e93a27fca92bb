package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/ui"
)

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "List available AWS profiles",
		Long: `List all available AWS profiles from ~/.aws/credentials and ~/.aws/config
(or AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE). The profile the current
settings resolve to is marked.

Examples:
  rdsctl profiles`,
		Args: positionalArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := aws.ListProfiles()
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			if len(profiles) == 0 {
				fmt.Fprintln(a.stdout, "No AWS profiles found")
				fmt.Fprintln(a.stdout, "Create profiles in ~/.aws/credentials or ~/.aws/config")
				return nil
			}

			active := ""
			if s, err := a.settings(); err == nil {
				active = s.Profile
			}
			return ui.ProfileTable(profiles, active).Render(a.stdout)
		},
	}
}
