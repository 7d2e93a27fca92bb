package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/rdsctl/internal/invoke"
)

func sampleResult() *types.DBSnapshotAttributesResult {
	return &types.DBSnapshotAttributesResult{
		DBSnapshotIdentifier: awssdk.String("snap-1"),
		DBSnapshotAttributes: []types.DBSnapshotAttribute{
			{AttributeName: awssdk.String("restore"), AttributeValues: []string{"123456789012", "all"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": JSON, "JSON": JSON, " yaml ": YAML, "text": Text} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  any
		want   string
	}{
		{
			name:   "json",
			format: JSON,
			value:  sampleResult(),
			want: `{
  "DBSnapshotAttributes": [
    {
      "AttributeName": "restore",
      "AttributeValues": [
        "123456789012",
        "all"
      ]
    }
  ],
  "DBSnapshotIdentifier": "snap-1"
}
`,
		},
		{
			name:   "yaml keeps field order and string types",
			format: YAML,
			value:  map[string]any{"Count": "123", "Enabled": true},
			want:   "Count: \"123\"\nEnabled: true\n",
		},
		{
			name:   "yaml nested",
			format: YAML,
			value:  sampleResult(),
			want: `DBSnapshotAttributes:
  - AttributeName: restore
    AttributeValues:
      - "123456789012"
      - all
DBSnapshotIdentifier: snap-1
`,
		},
		{
			name:   "text",
			format: Text,
			value:  sampleResult(),
			want: "DBSnapshotAttributes.0.AttributeName\trestore\n" +
				"DBSnapshotAttributes.0.AttributeValues.0\t123456789012\n" +
				"DBSnapshotAttributes.0.AttributeValues.1\tall\n" +
				"DBSnapshotIdentifier\tsnap-1\n",
		},
		{
			name:   "text scalar",
			format: Text,
			value:  "snap-1",
			want:   "snap-1\n",
		},
		{
			name:   "text time",
			format: Text,
			value:  map[string]any{"Created": time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			want:   "Created\t2024-05-01T10:00:00Z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.format, tt.value))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func serviceError() error {
	apiErr := &smithy.GenericAPIError{Code: "DBProxyEndpointNotFoundFault", Message: "endpoint ep-1 not found", Fault: smithy.FaultClient}
	return &smithy.OperationError{
		ServiceID:     "RDS",
		OperationName: "DeleteDBProxyEndpoint",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: 404}},
				Err:      apiErr,
			},
			RequestID: "req-123",
		},
	}
}

func TestDescribe(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		rec := Describe("", serviceError())
		assert.Equal(t, ErrorRecord{
			Operation: "DeleteDBProxyEndpoint",
			Kind:      KindService,
			Code:      "DBProxyEndpointNotFoundFault",
			Message:   "endpoint ep-1 not found",
			Fault:     "client",
			RequestID: "req-123",
			Status:    404,
		}, rec)
	})

	t.Run("validation", func(t *testing.T) {
		err := &invoke.ValidationError{Operation: "DeleteDBProxy", Param: "db-proxy-name", Reason: "value must not be empty"}
		rec := Describe("", err)
		assert.Equal(t, KindValidation, rec.Kind)
		assert.Equal(t, "DeleteDBProxy", rec.Operation)
	})

	t.Run("endpoint", func(t *testing.T) {
		err := &invoke.EndpointError{Operation: "DescribeDBInstances", Host: "rds.x.amazonaws.com", Err: errors.New("no such host")}
		assert.Equal(t, KindEndpoint, Describe("", err).Kind)
	})

	t.Run("confirmation", func(t *testing.T) {
		rec := Describe("DeleteDBProxy", fmt.Errorf("DeleteDBProxy: %w", invoke.ErrConfirmationRequired))
		assert.Equal(t, KindConfirmation, rec.Kind)
		assert.Contains(t, rec.Message, "--force")
	})

	t.Run("other", func(t *testing.T) {
		rec := Describe("StartDBInstance", context.DeadlineExceeded)
		assert.Equal(t, ErrorRecord{Operation: "StartDBInstance", Kind: KindError, Message: "context deadline exceeded"}, rec)
	})
}

func TestWriteError(t *testing.T) {
	rec := Describe("", serviceError())

	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, Text, rec))
	assert.Equal(t, "error: DeleteDBProxyEndpoint: DBProxyEndpointNotFoundFault: endpoint ep-1 not found (request id req-123)\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteError(&buf, JSON, rec))
	assert.Contains(t, buf.String(), `"requestId": "req-123"`)
	assert.Contains(t, buf.String(), `"kind": "service"`)

	buf.Reset()
	validation := Describe("", &invoke.ValidationError{Operation: "DeleteDBProxy", Reason: "bad"})
	require.NoError(t, WriteError(&buf, Text, validation))
	assert.Equal(t, "error: DeleteDBProxy: bad\n", buf.String())
}
