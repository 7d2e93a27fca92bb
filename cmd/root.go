package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/config"
	"github.com/vietdv277/rdsctl/internal/invoke"
	"github.com/vietdv277/rdsctl/internal/logging"
	"github.com/vietdv277/rdsctl/internal/output"
	"github.com/vietdv277/rdsctl/internal/prompt"
)

// Clients are the service clients a command runs against
type Clients struct {
	RDS aws.RDSAPI
	STS aws.STSAPI
}

// ClientFactory builds clients for resolved settings
type ClientFactory func(ctx context.Context, s config.Settings) (Clients, error)

func newSDKClients(ctx context.Context, s config.Settings) (Clients, error) {
	c, err := aws.NewClient(ctx,
		aws.WithProfile(s.Profile),
		aws.WithRegion(s.Region),
		aws.WithEndpoint(s.EndpointURL),
	)
	if err != nil {
		return Clients{}, err
	}
	return Clients{RDS: c.RDS, STS: c.STS}, nil
}

// app carries the state shared by one process: streams, the logger and the
// client cache reused by the shell.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	newClients  ClientFactory
	confirmer   invoke.Confirmer
	interactive func() bool

	v         *viper.Viper
	logger    *slog.Logger
	logCloser io.Closer
	logOpts   logging.Options
	clients   map[string]Clients

	// inherited and inheritedLog hold the global flags given to
	// "rdsctl shell"; each shell line falls back to them.
	inherited    config.Settings
	inheritedLog logging.Options
	format       output.Format
	operation    string
}

func newApp() *app {
	p := prompt.New()
	return &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newClients:  newSDKClients,
		confirmer:   p,
		interactive: func() bool { return p.Interactive() == nil },
		clients:     make(map[string]Clients),
		format:      output.Text,
	}
}

func newRootCmd(a *app) *cobra.Command {
	a.v = viper.New()

	rootCmd := &cobra.Command{
		Use:   "rdsctl",
		Short: "rdsctl - run Amazon RDS API operations from the shell",
		Long: `rdsctl exposes individual Amazon RDS API operations as commands. Each command
maps to exactly one API call: parameters become flags, destructive calls ask for
confirmation, and the response is projected to a single field by default.

Context-Aware Commands:
  rdsctl use prod              # Switch to the "prod" context
  rdsctl status                # Show current context and caller identity
  rdsctl contexts              # List all configured contexts

RDS Operations:
  rdsctl operations                                   # List available operations
  rdsctl rds describe-db-snapshot-attributes snap-1   # Show restore permissions
  rdsctl rds delete-db-proxy-endpoint ep-1 --force    # Delete without prompting

Interactive:
  rdsctl shell                 # Run many operations with one client`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("context", "c", "", "context from the config file to use")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region to use")
	flags.String("endpoint-url", "", "override the RDS endpoint URL")
	flags.StringP("output", "o", "", "output format: json, yaml or text")
	flags.String("confirm-impact", "", "prompt for operations at or above this impact: none, low, medium, high")
	flags.String("log-file", "", "also write a debug log to this file")
	flags.Bool("debug", false, "print debug messages")

	// Bind flags to viper; RDSCTL_<FLAG> environment variables fill unset flags
	a.v.SetEnvPrefix("RDSCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	flags.VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &invoke.ValidationError{Operation: c.Name(), Reason: err.Error()}
	})
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(
		newRDSCmd(a),
		newOperationsCmd(a),
		newShellCmd(a),
		newUseCmd(a),
		newContextsCmd(a),
		newStatusCmd(a),
		newProfilesCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup builds the logger, and rebuilds it when a shell line changes
// --debug or --log-file.
func (a *app) setup() error {
	if f, err := output.ParseFormat(a.flagOr("output", a.inherited.Output)); err == nil {
		a.format = f
	}
	opts := logging.Options{
		Console: a.stderr,
		Debug:   a.v.GetBool("debug") || a.inheritedLog.Debug,
		File:    a.flagOr("log-file", a.inheritedLog.File),
	}
	if a.logger != nil && opts == a.logOpts {
		return nil
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.close()
	a.logger, a.logCloser, a.logOpts = logger, closer, opts
	return nil
}

func (a *app) flagOr(key, fallback string) string {
	if s := a.v.GetString(key); s != "" {
		return s
	}
	return fallback
}

// settings resolves the effective settings: flag > env > inherited shell
// flags > context > file defaults > AWS environment.
func (a *app) settings() (config.Settings, error) {
	file, err := config.Load(config.DefaultPath())
	if err != nil {
		return config.Settings{}, err
	}
	s, err := config.Resolve(file, config.Settings{
		Context:       a.flagOr("context", a.inherited.Context),
		Profile:       a.flagOr("profile", a.inherited.Profile),
		Region:        a.flagOr("region", a.inherited.Region),
		EndpointURL:   a.flagOr("endpoint-url", a.inherited.EndpointURL),
		Output:        a.flagOr("output", a.inherited.Output),
		ConfirmImpact: a.flagOr("confirm-impact", a.inherited.ConfirmImpact),
	})
	if err != nil {
		return config.Settings{}, err
	}
	a.format = output.Format(s.Output)
	return s, nil
}

// clientsFor returns cached clients for the settings or builds new ones
func (a *app) clientsFor(ctx context.Context, s config.Settings) (Clients, error) {
	if c, ok := a.clients[s.Key()]; ok {
		return c, nil
	}
	c, err := a.newClients(ctx, s)
	if err != nil {
		return Clients{}, fmt.Errorf("failed to create AWS client: %w", err)
	}
	a.log().Debug("created AWS clients", "profile", s.Profile, "region", s.Region, "endpoint", s.EndpointURL)
	a.clients[s.Key()] = c
	return c, nil
}

func (a *app) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.logger
}

// report writes err as an error record and returns its exit code
func (a *app) report(err error) int {
	rec := output.Describe(a.operation, err)
	if werr := output.WriteError(a.stderr, a.format, rec); werr != nil {
		fmt.Fprintln(a.stderr, err)
	}
	return exitCode(err)
}

// execute runs one command line and returns the process exit code
func (a *app) execute(ctx context.Context, args []string) int {
	a.operation = ""
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return a.report(err)
	}
	return 0
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := newApp()
	code := a.execute(ctx, os.Args[1:])
	stop()
	a.close()
	os.Exit(code)
}

// positionalArgs limits the arguments of a command and reports a violation
// as a validation error.
func positionalArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return &invoke.ValidationError{
				Operation: cmd.Name(),
				Reason:    fmt.Sprintf("accepts at most %d argument(s), received %d", n, len(args)),
			}
		}
		return nil
	}
}

var errNotInteractive = errors.New("not running on a terminal")
