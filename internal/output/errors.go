package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	"github.com/vietdv277/rdsctl/internal/invoke"
)

// Error kinds
const (
	KindValidation   = "validation"
	KindEndpoint     = "endpoint"
	KindConfirmation = "confirmation"
	KindService      = "service"
	KindCancelled    = "cancelled"
	KindError        = "error"
)

// ErrorRecord is the structured form of a failed invocation
type ErrorRecord struct {
	Operation string `json:"operation,omitempty"`
	Kind      string `json:"kind"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Fault     string `json:"fault,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Status    int    `json:"status,omitempty"`
}

// Describe classifies err. operation is used when the error does not name one.
func Describe(operation string, err error) ErrorRecord {
	rec := ErrorRecord{Operation: operation, Kind: KindError, Message: err.Error()}

	var (
		validation *invoke.ValidationError
		endpoint   *invoke.EndpointError
		opErr      *smithy.OperationError
		apiErr     smithy.APIError
		respErr    *awshttp.ResponseError
	)

	switch {
	case errors.As(err, &validation):
		rec.Kind = KindValidation
		rec.Operation = validation.Operation
	case errors.As(err, &endpoint):
		rec.Kind = KindEndpoint
		rec.Operation = endpoint.Operation
	case errors.Is(err, invoke.ErrConfirmationRequired):
		rec.Kind = KindConfirmation
		rec.Message = fmt.Sprintf("%v; rerun on a terminal or pass --force", err)
	case errors.Is(err, context.Canceled):
		rec.Kind = KindCancelled
	case errors.As(err, &apiErr):
		rec.Kind = KindService
		rec.Code = apiErr.ErrorCode()
		rec.Message = apiErr.ErrorMessage()
		if fault := apiErr.ErrorFault(); fault != smithy.FaultUnknown {
			rec.Fault = fault.String()
		}
	}

	if errors.As(err, &opErr) && rec.Operation == "" {
		rec.Operation = opErr.Operation()
	}
	if errors.As(err, &respErr) {
		rec.RequestID = respErr.ServiceRequestID()
		rec.Status = respErr.HTTPStatusCode()
	}
	return rec
}

// WriteError renders an error record. Text output is a single line.
func WriteError(w io.Writer, format Format, rec ErrorRecord) error {
	if format != Text {
		return Render(w, format, rec)
	}

	line := rec.Message
	if rec.Code != "" {
		line = rec.Code + ": " + line
	}
	if rec.Operation != "" && !strings.HasPrefix(line, rec.Operation+":") {
		line = rec.Operation + ": " + line
	}
	if rec.RequestID != "" {
		line += " (request id " + rec.RequestID + ")"
	}
	_, err := fmt.Fprintln(w, "error: "+line)
	return err
}
