package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/config"
	"github.com/vietdv277/rdsctl/internal/ui"
)

func newUseCmd(a *app) *cobra.Command {
	useCmd := &cobra.Command{
		Use:   "use [context-name]",
		Short: "Set the active context",
		Long: `Set the active context for subsequent commands.

A context names an AWS profile, a region and optionally an RDS endpoint URL.
Without an argument an interactive selector is shown.

Examples:
  rdsctl use prod           # Switch to the "prod" context
  rdsctl use                # Pick a context interactively`,
		Args: positionalArgs(1),
		RunE: a.runUse,
	}

	useAddCmd := &cobra.Command{
		Use:   "add <context-name>",
		Short: "Add a new context",
		Long: `Add a new context configuration. The global --profile, --region and
--endpoint-url flags give its settings; without --profile on a terminal a
profile selector is shown.

Examples:
  rdsctl use add prod --profile prod-sso --region eu-west-1
  rdsctl use add local --region us-east-1 --endpoint-url http://localhost:4566`,
		Args: cobra.ExactArgs(1),
		RunE: a.runUseAdd,
	}

	useDeleteCmd := &cobra.Command{
		Use:   "delete <context-name>",
		Short: "Delete a context",
		Long: `Delete a context configuration.

Examples:
  rdsctl use delete old-env`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm", "remove"},
		RunE:    a.runUseDelete,
	}

	useCmd.AddCommand(useAddCmd, useDeleteCmd)
	return useCmd
}

func (a *app) runUse(cmd *cobra.Command, args []string) error {
	file, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !a.interactive() {
			return &ExitError{ExitType: ExitValidation, Err: fmt.Errorf("a context name is required: %w", errNotInteractive)}
		}
		name, err = ui.SelectContext(file.Contexts, file.CurrentContext)
		if errors.Is(err, ui.ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := file.Use(name); err != nil {
		fmt.Fprintf(a.stderr, "Context %q not found.\n\n", name)
		a.printContextHint(file)
		return &ExitError{ExitType: ExitValidation, Err: err}
	}
	if err := file.Save(); err != nil {
		return err
	}

	ctx := file.Contexts[file.CurrentContext]
	fmt.Fprintf(a.stdout, "Switched to context: %s\n", file.CurrentContext)
	if ctx.Profile != "" {
		fmt.Fprintf(a.stdout, "  Profile:  %s\n", ctx.Profile)
	}
	if ctx.Region != "" {
		fmt.Fprintf(a.stdout, "  Region:   %s\n", ctx.Region)
	}
	if ctx.EndpointURL != "" {
		fmt.Fprintf(a.stdout, "  Endpoint: %s\n", ctx.EndpointURL)
	}
	return nil
}

func (a *app) printContextHint(file *config.File) {
	if len(file.Contexts) == 0 {
		fmt.Fprintln(a.stderr, "No contexts configured. Add one with:")
		fmt.Fprintln(a.stderr, "  rdsctl use add prod --profile <profile> --region <region>")
		return
	}
	fmt.Fprintln(a.stderr, "Available contexts:")
	for _, name := range file.Names() {
		marker := "  "
		if name == file.CurrentContext {
			marker = "* "
		}
		fmt.Fprintf(a.stderr, "  %s%s\n", marker, name)
	}
}

// changedFlag returns a global flag only when it was given on the command line
func changedFlag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

func (a *app) runUseAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := &config.Context{
		Profile:     changedFlag(cmd, "profile"),
		Region:      changedFlag(cmd, "region"),
		EndpointURL: changedFlag(cmd, "endpoint-url"),
	}

	if ctx.Profile == "" && a.interactive() {
		profiles, err := aws.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(profiles) > 0 {
			selected, err := ui.SelectProfile(profiles, "")
			if err != nil && !errors.Is(err, ui.ErrSelectionCancelled) {
				return err
			}
			if selected != nil {
				ctx.Profile = selected.Name
				if ctx.Region == "" {
					ctx.Region = selected.Region
				}
			}
		}
	}
	if ctx.Profile != "" && !aws.ProfileExists(ctx.Profile) {
		a.log().Warn(fmt.Sprintf("profile %q is not in the shared AWS config files", ctx.Profile))
	}

	file, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := file.Add(name, ctx); err != nil {
		return &ExitError{ExitType: ExitValidation, Err: err}
	}
	if err := file.Save(); err != nil {
		return fmt.Errorf("failed to add context: %w", err)
	}

	fmt.Fprintf(a.stdout, "Context added: %s\n", name)
	fmt.Fprintln(a.stdout, "\nTo use this context:")
	fmt.Fprintf(a.stdout, "  rdsctl use %s\n", name)
	return nil
}

func (a *app) runUseDelete(cmd *cobra.Command, args []string) error {
	file, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := file.Delete(args[0]); err != nil {
		return &ExitError{ExitType: ExitValidation, Err: err}
	}
	if err := file.Save(); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Fprintf(a.stdout, "Context deleted: %s\n", args[0])
	return nil
}
