package invoke

import (
	"errors"
	"fmt"
	"net"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNameResolution       = errors.New("endpoint name resolution failed")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError reports an input problem detected before dispatch.
type ValidationError struct {
	Operation string
	Param     string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: parameter %s: %s", e.Operation, e.Param, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EndpointError wraps a failure to resolve the service endpoint host.
type EndpointError struct {
	Operation string
	Host      string
	Err       error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s: could not resolve endpoint host %q; check the region and endpoint URL configured for the RDS client: %v",
		e.Operation, e.Host, e.Err)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

func (e *EndpointError) Is(target error) bool {
	return target == ErrNameResolution
}

// Translate rewrites name-resolution failures into an EndpointError and
// returns every other error unchanged.
func Translate(operation string, err error) error {
	if err == nil {
		return nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &EndpointError{Operation: operation, Host: dnsErr.Name, Err: err}
	}
	return err
}
