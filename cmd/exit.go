package cmd

import (
	"errors"

	"github.com/vietdv277/rdsctl/internal/output"
)

// ExitType is a class of failure and its process exit code
type ExitType struct {
	Code        int
	Description string
}

var (
	ExitGeneric      = ExitType{1, "Command failed"}
	ExitValidation   = ExitType{2, "Invalid input"}
	ExitEndpoint     = ExitType{3, "Service endpoint could not be resolved"}
	ExitService      = ExitType{4, "Service returned an error"}
	ExitConfirmation = ExitType{5, "Confirmation required but no terminal available"}
)

// ExitError attaches an exit type to an error
type ExitError struct {
	ExitType
	Err error
}

func (e *ExitError) Error() string {
	return e.Description + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitTypeFor(err error) ExitType {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitType
	}
	switch output.Describe("", err).Kind {
	case output.KindValidation:
		return ExitValidation
	case output.KindEndpoint:
		return ExitEndpoint
	case output.KindService:
		return ExitService
	case output.KindConfirmation:
		return ExitConfirmation
	}
	return ExitGeneric
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return exitTypeFor(err).Code
}
