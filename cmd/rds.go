package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vietdv277/rdsctl/internal/catalog"
	"github.com/vietdv277/rdsctl/internal/invoke"
	"github.com/vietdv277/rdsctl/internal/output"
)

func newRDSCmd(a *app) *cobra.Command {
	rdsCmd := &cobra.Command{
		Use:   "rds",
		Short: "Run an Amazon RDS API operation",
		Long: `Run a single Amazon RDS API operation.

Every operation command takes its identifying parameter as the first argument
or as a flag. The response is reduced to the operation's main field unless
--select asks for something else:

  --select '*'                      the whole response
  --select DBSnapshotAttributesResult.DBSnapshotAttributes
                                    a response field, with an optional path
  --select '^DBSnapshotIdentifier'  the value bound to an input parameter

Examples:
  rdsctl rds describe-db-snapshot-attributes my-snapshot
  rdsctl rds describe-db-instances --filters engine=postgres -o yaml
  rdsctl rds delete-db-cluster-automated-backup cluster-ABC --force
  rdsctl rds add-tags-to-resource arn:aws:rds:... --tags env=prod --tags team=data`,
	}

	for _, op := range catalog.All() {
		rdsCmd.AddCommand(newOperationCmd(a, op))
	}
	return rdsCmd
}

func newOperationCmd(a *app, op catalog.Operation) *cobra.Command {
	spec := op.Spec()
	positional, hasPositional := spec.Positional()

	use := spec.Command()
	maxArgs := 0
	if hasPositional {
		use += " [" + strings.ToUpper(positional.Flag()) + "]"
		maxArgs = 1
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: spec.Short,
		Long:  operationHelp(op),
		Args:  positionalArgs(maxArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd, op, args)
		},
	}

	flags := cmd.Flags()
	for _, p := range spec.Params {
		switch p.Kind {
		case invoke.KindBool:
			flags.Bool(p.Flag(), false, p.Usage)
		case invoke.KindInt32:
			flags.Int32(p.Flag(), 0, p.Usage)
		case invoke.KindStrings, invoke.KindTags, invoke.KindFilters:
			flags.StringArray(p.Flag(), nil, p.Usage)
		default:
			flags.String(p.Flag(), "", p.Usage)
		}
	}
	flags.String("select", "", "output selection: a response field path, * or ^Parameter")
	if spec.Impact > invoke.ImpactNone {
		flags.Bool("force", false, "do not prompt for confirmation")
	}
	return cmd
}

func operationHelp(op catalog.Operation) string {
	spec := op.Spec()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.\n\nAPI operation: %s\nImpact:        %s\n", spec.Short, spec.Name, spec.Impact)
	if spec.Output != "" {
		fmt.Fprintf(&sb, "Default output: %s\n", spec.Output)
	} else {
		sb.WriteString("Default output: none\n")
	}
	fmt.Fprintf(&sb, "Response fields: %s\n", strings.Join(op.Fields(), ", "))

	sb.WriteString("\nParameters:\n")
	for _, p := range spec.Params {
		req := ""
		switch p.Requirement {
		case invoke.Identifying:
			req = " (required)"
		case invoke.Mandatory:
			req = " (mandatory)"
		}
		pos := ""
		if p.Positional {
			pos = ", or first argument"
		}
		fmt.Fprintf(&sb, "  --%s <%s>%s%s\n", p.Flag(), p.Kind, req, pos)
	}
	if len(spec.RequireOneOf) > 0 {
		names := make([]string, len(spec.RequireOneOf))
		for i, n := range spec.RequireOneOf {
			names[i] = "--" + invoke.FlagName(n)
		}
		fmt.Fprintf(&sb, "\nOne of %s is required.\n", strings.Join(names, ", "))
	}
	return sb.String()
}

// bindValues collects the parameters given on the command line. Only flags
// that were set are bound.
func bindValues(cmd *cobra.Command, spec invoke.Spec, args []string) (invoke.Values, error) {
	values := invoke.Values{}
	flags := cmd.Flags()

	for _, p := range spec.Params {
		f := flags.Lookup(p.Flag())
		if f == nil || !f.Changed {
			continue
		}
		v, err := p.Parse(rawValues(f))
		if err != nil {
			return nil, &invoke.ValidationError{Operation: spec.Name, Param: p.Flag(), Reason: err.Error()}
		}
		values[p.Name] = v
	}

	if p, ok := spec.Positional(); ok && len(args) > 0 {
		if _, set := values[p.Name]; set {
			return nil, &invoke.ValidationError{Operation: spec.Name, Param: p.Flag(), Reason: "given both as argument and flag"}
		}
		v, err := p.Parse(args[:1])
		if err != nil {
			return nil, &invoke.ValidationError{Operation: spec.Name, Param: p.Flag(), Reason: err.Error()}
		}
		values[p.Name] = v
	}
	return values, nil
}

func rawValues(f *pflag.Flag) []string {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice()
	}
	return []string{f.Value.String()}
}

func (a *app) runOperation(cmd *cobra.Command, op catalog.Operation, args []string) error {
	spec := op.Spec()
	a.operation = spec.Name

	values, err := bindValues(cmd, spec, args)
	if err != nil {
		return err
	}

	s, err := a.settings()
	if err != nil {
		return err
	}
	threshold, err := invoke.ParseImpact(s.ConfirmImpact)
	if err != nil {
		return &invoke.ValidationError{Operation: spec.Name, Param: "confirm-impact", Reason: err.Error()}
	}

	clients, err := a.clientsFor(cmd.Context(), s)
	if err != nil {
		return err
	}

	selectExpr, _ := cmd.Flags().GetString("select")
	force, _ := cmd.Flags().GetBool("force")

	res, err := op.Run(cmd.Context(), clients.RDS, &invoke.Execution{
		Values:    values,
		Select:    selectExpr,
		Force:     force,
		Threshold: threshold,
		Confirmer: a.confirmer,
		Logger:    a.log(),
	})
	if err != nil {
		return err
	}

	switch res.Phase {
	case invoke.PhaseConfirmationDeclined:
		a.log().Info("Operation not confirmed; nothing was sent.")
		return nil
	case invoke.PhaseCancelled:
		a.log().Info("Operation cancelled.")
		return nil
	}
	if !res.HasOutput {
		return nil
	}
	return output.Render(a.stdout, output.Format(s.Output), res.Output)
}
