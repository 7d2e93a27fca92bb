package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  positionalArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "rdsctl\n")
			fmt.Fprintf(a.stdout, "  Version:    %s\n", Version)
			fmt.Fprintf(a.stdout, "  Commit:     %s\n", Commit)
			fmt.Fprintf(a.stdout, "  Build Date: %s\n", BuildDate)
		},
	}
}
