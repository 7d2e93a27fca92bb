package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vietdv277/rdsctl/internal/config"
	"github.com/vietdv277/rdsctl/internal/logging"
)

const shellPrompt = "rdsctl> "

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run rdsctl commands interactively",
		Long: `Start a read-eval loop. Each line is split with shell quoting rules and run
as an rdsctl command line, for example:

  rdsctl> rds describe-db-instances my-db --select DBInstances.0.DBInstanceStatus
  rdsctl> rds reboot-db-instance my-db

A failing command prints an error record and the loop continues. Ctrl-C
cancels only the running operation. The global flags given to "rdsctl shell",
including --debug and --log-file, apply to every line unless the line
overrides them. The AWS client is reused while the resolved profile, region
and endpoint stay the same.

Type "exit" or press Ctrl-D to leave.

Examples:
  rdsctl shell
  rdsctl --context prod shell
  echo "rds describe-db-proxies" | rdsctl shell -o yaml`,
		Args: positionalArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.inherited = config.Settings{
				Context:       a.v.GetString("context"),
				Profile:       a.v.GetString("profile"),
				Region:        a.v.GetString("region"),
				EndpointURL:   a.v.GetString("endpoint-url"),
				Output:        a.v.GetString("output"),
				ConfirmImpact: a.v.GetString("confirm-impact"),
			}
			a.inheritedLog = logging.Options{
				Debug: a.v.GetBool("debug"),
				File:  a.v.GetString("log-file"),
			}
			return a.runShell(cmd.Context())
		},
	}
}

func (a *app) promptVisible() bool {
	f, ok := a.stdin.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (a *app) runShell(ctx context.Context) error {
	// Lines are not cancelled by the signal that ends a one-shot command.
	base := context.WithoutCancel(ctx)
	showPrompt := a.promptVisible()

	scanner := bufio.NewScanner(a.stdin)
	for {
		if showPrompt {
			fmt.Fprint(a.stdout, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args, err := shellquote.Split(line)
		if err != nil {
			a.report(fmt.Errorf("failed to parse line: %w", err))
			continue
		}
		if len(args) > 0 && args[0] == "rdsctl" {
			args = args[1:]
		}
		if len(args) > 0 && args[0] == "shell" {
			a.log().Warn("already in a shell")
			continue
		}

		lineCtx, stop := signal.NotifyContext(base, os.Interrupt)
		code := a.execute(lineCtx, args)
		stop()
		a.log().Debug("shell line finished", "line", line, "exit", code)
	}

	if showPrompt {
		fmt.Fprintln(a.stdout)
	}
	return scanner.Err()
}
