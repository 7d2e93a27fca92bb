// Package prompt asks the operator for confirmation on a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/vietdv277/rdsctl/internal/invoke"
)

// EnvNoInteractive disables prompts when set to any value
const EnvNoInteractive = "RDSCTL_NO_INTERACTIVE"

// ErrInteractiveDisabled is returned when prompts are disabled via RDSCTL_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("%w: interactive prompts are disabled (%s is set)", invoke.ErrConfirmationRequired, EnvNoInteractive)

// ErrNoTerminal is returned when stdin or stdout is not a terminal
var ErrNoTerminal = fmt.Errorf("%w: stdin is not a terminal", invoke.ErrConfirmationRequired)

// Prompter confirms gated operations with a survey prompt
type Prompter struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err *os.File
}

// New returns a prompter on the process's standard streams
func New() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// Interactive reports whether prompts can be shown
func (p *Prompter) Interactive() error {
	if os.Getenv(EnvNoInteractive) != "" {
		return ErrInteractiveDisabled
	}
	if !isTerminal(p.in.Fd()) || !isTerminal(p.out.Fd()) {
		return ErrNoTerminal
	}
	return nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks a yes/no question defaulting to no. Interrupting the prompt
// declines; a context cancelled before the prompt returns its error.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := p.Interactive(); err != nil {
		return false, err
	}

	var ok bool
	q := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(q, &ok, survey.WithStdio(p.in, p.out, p.err)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return ok, nil
}
