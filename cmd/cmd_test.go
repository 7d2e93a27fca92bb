package cmd

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/config"
	"github.com/vietdv277/rdsctl/internal/prompt"
)

type fakeRDS struct {
	aws.RDSAPI

	calls   []string
	err     error
	addTags *rds.AddTagsToResourceInput
}

func (f *fakeRDS) DescribeDBSnapshotAttributes(_ context.Context, in *rds.DescribeDBSnapshotAttributesInput, _ ...func(*rds.Options)) (*rds.DescribeDBSnapshotAttributesOutput, error) {
	f.calls = append(f.calls, "DescribeDBSnapshotAttributes")
	if f.err != nil {
		return nil, f.err
	}
	return &rds.DescribeDBSnapshotAttributesOutput{
		DBSnapshotAttributesResult: &types.DBSnapshotAttributesResult{
			DBSnapshotIdentifier: in.DBSnapshotIdentifier,
			DBSnapshotAttributes: []types.DBSnapshotAttribute{
				{AttributeName: awssdk.String("restore"), AttributeValues: []string{"all"}},
			},
		},
	}, nil
}

func (f *fakeRDS) DeleteDBProxyEndpoint(_ context.Context, in *rds.DeleteDBProxyEndpointInput, _ ...func(*rds.Options)) (*rds.DeleteDBProxyEndpointOutput, error) {
	f.calls = append(f.calls, "DeleteDBProxyEndpoint")
	if f.err != nil {
		return nil, f.err
	}
	return &rds.DeleteDBProxyEndpointOutput{
		DBProxyEndpoint: &types.DBProxyEndpoint{DBProxyEndpointName: in.DBProxyEndpointName, Status: types.DBProxyEndpointStatusDeleting},
	}, nil
}

func (f *fakeRDS) AddTagsToResource(_ context.Context, in *rds.AddTagsToResourceInput, _ ...func(*rds.Options)) (*rds.AddTagsToResourceOutput, error) {
	f.calls = append(f.calls, "AddTagsToResource")
	f.addTags = in
	return &rds.AddTagsToResourceOutput{}, f.err
}

type fakeSTS struct{ err error }

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{
		Account: awssdk.String("123456789012"),
		Arn:     awssdk.String("arn:aws:iam::123456789012:user/ops"),
		UserId:  awssdk.String("AIDAEXAMPLE"),
	}, nil
}

type stubConfirmer struct {
	answer  bool
	prompts []string
}

func (s *stubConfirmer) Confirm(_ context.Context, p string) (bool, error) {
	s.prompts = append(s.prompts, p)
	return s.answer, nil
}

type testApp struct {
	*app
	rds      *fakeRDS
	sts      *fakeSTS
	confirm  *stubConfirmer
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	resolved []config.Settings
}

func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()
	for _, k := range []string{"AWS_PROFILE", "AWS_REGION", "AWS_DEFAULT_REGION",
		"RDSCTL_CONTEXT", "RDSCTL_PROFILE", "RDSCTL_REGION", "RDSCTL_ENDPOINT_URL",
		"RDSCTL_OUTPUT", "RDSCTL_CONFIRM_IMPACT", "RDSCTL_LOG_FILE", "RDSCTL_DEBUG"} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "rdsctl.yaml"))

	ta := &testApp{
		rds:     &fakeRDS{},
		sts:     &fakeSTS{},
		confirm: &stubConfirmer{},
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
	}
	ta.app = &app{
		stdin:       strings.NewReader(stdin),
		stdout:      ta.stdout,
		stderr:      ta.stderr,
		confirmer:   ta.confirm,
		interactive: func() bool { return false },
		clients:     make(map[string]Clients),
		newClients: func(_ context.Context, s config.Settings) (Clients, error) {
			ta.resolved = append(ta.resolved, s)
			return Clients{RDS: ta.rds, STS: ta.sts}, nil
		},
	}
	return ta
}

func (ta *testApp) run(args ...string) int {
	ta.stdout.Reset()
	ta.stderr.Reset()
	return ta.execute(context.Background(), args)
}

func TestDescribeDefaultOutput(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("rds", "describe-db-snapshot-attributes", "snap-1", "--region", "us-east-1")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Equal(t, []string{"DescribeDBSnapshotAttributes"}, ta.rds.calls)

	var got map[string]any
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &got))
	assert.Equal(t, "snap-1", got["DBSnapshotIdentifier"])
	assert.NotContains(t, got, "DBSnapshotAttributesResult")

	require.Len(t, ta.resolved, 1)
	assert.Equal(t, "us-east-1", ta.resolved[0].Region)
}

func TestSelectAndFormats(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("rds", "describe-db-snapshot-attributes", "--db-snapshot-identifier", "snap-1",
		"--select", "^DBSnapshotIdentifier", "-o", "text")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Equal(t, "snap-1\n", ta.stdout.String())

	code = ta.run("rds", "describe-db-snapshot-attributes", "snap-1", "--select", "*", "-o", "yaml")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Contains(t, ta.stdout.String(), "DBSnapshotAttributesResult:")

	code = ta.run("rds", "describe-db-snapshot-attributes", "snap-1", "--select", "NoSuchField")
	assert.Equal(t, ExitValidation.Code, code)
	assert.Len(t, ta.rds.calls, 2)
}

func TestConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		ta := newTestApp(t, "")
		code := ta.run("rds", "delete-db-proxy-endpoint", "ep-1")
		assert.Equal(t, 0, code)
		assert.Empty(t, ta.rds.calls)
		assert.Empty(t, ta.stdout.String())
		require.Len(t, ta.confirm.prompts, 1)
		assert.Contains(t, ta.confirm.prompts[0], `"DeleteDBProxyEndpoint"`)
		assert.Contains(t, ta.confirm.prompts[0], `"ep-1"`)
	})

	t.Run("accepted", func(t *testing.T) {
		ta := newTestApp(t, "")
		ta.confirm.answer = true
		code := ta.run("rds", "delete-db-proxy-endpoint", "ep-1", "-o", "text")
		assert.Equal(t, 0, code)
		assert.Equal(t, []string{"DeleteDBProxyEndpoint"}, ta.rds.calls)
		assert.Contains(t, ta.stdout.String(), "DBProxyEndpointName\tep-1")
	})

	t.Run("force", func(t *testing.T) {
		ta := newTestApp(t, "")
		code := ta.run("rds", "delete-db-proxy-endpoint", "ep-1", "--force")
		assert.Equal(t, 0, code)
		assert.Empty(t, ta.confirm.prompts)
		assert.Len(t, ta.rds.calls, 1)
	})

	t.Run("threshold none disables prompts", func(t *testing.T) {
		ta := newTestApp(t, "")
		code := ta.run("rds", "delete-db-proxy-endpoint", "ep-1", "--confirm-impact", "none")
		assert.Equal(t, 0, code)
		assert.Empty(t, ta.confirm.prompts)
		assert.Len(t, ta.rds.calls, 1)
	})

	t.Run("no terminal", func(t *testing.T) {
		ta := newTestApp(t, "")
		t.Setenv(prompt.EnvNoInteractive, "1")
		ta.confirmer = prompt.New()
		code := ta.run("rds", "delete-db-proxy-endpoint", "ep-1")
		assert.Equal(t, ExitConfirmation.Code, code)
		assert.Empty(t, ta.rds.calls)
		assert.Contains(t, ta.stderr.String(), "--force")
	})
}

func TestValidation(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("rds", "delete-db-proxy-endpoint", "", "--force")
	assert.Equal(t, ExitValidation.Code, code)
	assert.Contains(t, ta.stderr.String(), "db-proxy-endpoint-name")

	code = ta.run("rds", "delete-db-proxy-endpoint", "--force")
	assert.Equal(t, ExitValidation.Code, code)

	code = ta.run("rds", "delete-db-proxy-endpoint", "a", "b")
	assert.Equal(t, ExitValidation.Code, code)

	code = ta.run("rds", "delete-db-proxy-endpoint", "ep-1", "--db-proxy-endpoint-name", "ep-2")
	assert.Equal(t, ExitValidation.Code, code)

	code = ta.run("rds", "describe-db-instances", "--max-records", "many")
	assert.Equal(t, ExitValidation.Code, code)

	code = ta.run("rds", "describe-db-instances", "--no-such-flag")
	assert.Equal(t, ExitValidation.Code, code)

	assert.Empty(t, ta.rds.calls)
}

func TestTags(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("rds", "add-tags-to-resource", "arn:aws:rds:us-east-1:123456789012:db:db1",
		"--tags", "env=prod", "--tags", "team=data")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Empty(t, ta.stdout.String())

	require.NotNil(t, ta.rds.addTags)
	require.Len(t, ta.rds.addTags.Tags, 2)
	assert.Equal(t, "team", awssdk.ToString(ta.rds.addTags.Tags[1].Key))
	assert.Equal(t, "data", awssdk.ToString(ta.rds.addTags.Tags[1].Value))
}

func TestErrors(t *testing.T) {
	t.Run("name resolution", func(t *testing.T) {
		ta := newTestApp(t, "")
		ta.rds.err = &url.Error{Op: "Post", URL: "https://rds.nowhere.amazonaws.com/", Err: &net.DNSError{Err: "no such host", Name: "rds.nowhere.amazonaws.com"}}
		code := ta.run("rds", "describe-db-snapshot-attributes", "snap-1", "-o", "json")
		assert.Equal(t, ExitEndpoint.Code, code)
		assert.Contains(t, ta.stderr.String(), `"kind": "endpoint"`)
		assert.Contains(t, ta.stderr.String(), "rds.nowhere.amazonaws.com")
	})

	t.Run("other errors", func(t *testing.T) {
		ta := newTestApp(t, "")
		ta.rds.err = errors.New("connection reset")
		code := ta.run("rds", "describe-db-snapshot-attributes", "snap-1")
		assert.Equal(t, ExitGeneric.Code, code)
		assert.Contains(t, ta.stderr.String(), "connection reset")
	})
}

func TestShell(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"rds describe-db-snapshot-attributes ''",
		`rds describe-db-snapshot-attributes "snap 1" --select ^DBSnapshotIdentifier -o text`,
		"rdsctl rds delete-db-proxy-endpoint ep-1 --force -o text --select DBProxyEndpoint.Status",
		"exit",
		"rds describe-db-snapshot-attributes never-run",
	}, "\n")
	ta := newTestApp(t, input)

	code := ta.execute(context.Background(), []string{"--region", "eu-west-1", "shell"})
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"DescribeDBSnapshotAttributes", "DeleteDBProxyEndpoint"}, ta.rds.calls)
	assert.Equal(t, "snap 1\ndeleting\n", ta.stdout.String())
	assert.Contains(t, ta.stderr.String(), "db-snapshot-identifier")

	require.Len(t, ta.resolved, 1, "client is reused across lines")
	assert.Equal(t, "eu-west-1", ta.resolved[0].Region)
}

func TestContextCommands(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("use", "add", "local", "--region", "us-east-1", "--endpoint-url", "http://localhost:4566")
	require.Equal(t, 0, code, ta.stderr.String())

	code = ta.run("use", "add", "prod", "--region", "eu-west-1")
	require.Equal(t, 0, code, ta.stderr.String())

	code = ta.run("use", "local")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Contains(t, ta.stdout.String(), "Endpoint: http://localhost:4566")

	code = ta.run("contexts")
	require.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), "current: local")

	code = ta.run("rds", "describe-db-snapshot-attributes", "snap-1")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Equal(t, "http://localhost:4566", ta.resolved[len(ta.resolved)-1].EndpointURL)

	code = ta.run("use", "missing")
	assert.Equal(t, ExitValidation.Code, code)
	assert.Contains(t, ta.stderr.String(), "Available contexts:")

	code = ta.run("use")
	assert.Equal(t, ExitValidation.Code, code)

	code = ta.run("use", "delete", "local")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(os.Getenv(config.EnvConfigPath))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "local")
	assert.Contains(t, string(data), "prod")
}

func TestStatus(t *testing.T) {
	ta := newTestApp(t, "")

	code := ta.run("status", "--profile", "ops", "--region", "us-west-2")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Contains(t, ta.stdout.String(), "Profile:  ops")
	assert.Contains(t, ta.stdout.String(), "Account:  123456789012")

	ta.sts.err = errors.New("ExpiredToken")
	code = ta.run("status", "--profile", "ops2", "--region", "us-west-2")
	assert.Equal(t, ExitGeneric.Code, code)
	assert.Contains(t, ta.stdout.String(), "aws sso login --profile ops2")
}

func TestOperationsAndVersion(t *testing.T) {
	ta := newTestApp(t, "")

	require.Equal(t, 0, ta.run("operations"))
	assert.Contains(t, ta.stdout.String(), "delete-db-cluster-automated-backup")
	assert.Contains(t, ta.stdout.String(), "23 operations")

	require.Equal(t, 0, ta.run("version"))
	assert.Contains(t, ta.stdout.String(), "Version:    dev")
}

func TestEnvironmentOverrides(t *testing.T) {
	ta := newTestApp(t, "")
	t.Setenv("RDSCTL_REGION", "ap-south-1")
	t.Setenv("RDSCTL_OUTPUT", "text")

	code := ta.run("rds", "describe-db-snapshot-attributes", "snap-1", "--select", "^DBSnapshotIdentifier")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Equal(t, "snap-1\n", ta.stdout.String())
	assert.Equal(t, "ap-south-1", ta.resolved[0].Region)
}

func TestProfiles(t *testing.T) {
	ta := newTestApp(t, "")
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(cfg, []byte("[profile ops]\nregion = eu-west-1\nsso_session = corp\n"), 0600))
	t.Setenv("AWS_CONFIG_FILE", cfg)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))

	code := ta.run("profiles", "--profile", "ops")
	require.Equal(t, 0, code, ta.stderr.String())
	assert.Contains(t, ta.stdout.String(), "●")
	assert.Contains(t, ta.stdout.String(), "eu-west-1")
	assert.Contains(t, ta.stdout.String(), "1 profiles")
}

func TestShellLoggingFlags(t *testing.T) {
	t.Run("per line", func(t *testing.T) {
		ta := newTestApp(t, strings.Join([]string{
			"rds describe-db-snapshot-attributes snap-1 --debug -o text --select ^DBSnapshotIdentifier",
			"rds describe-db-snapshot-attributes snap-2 -o text --select ^DBSnapshotIdentifier",
		}, "\n"))

		code := ta.execute(context.Background(), []string{"--region", "us-east-1", "shell"})
		require.Equal(t, 0, code, ta.stderr.String())
		assert.Equal(t, "snap-1\nsnap-2\n", ta.stdout.String())
		assert.Equal(t, 1, strings.Count(ta.stderr.String(), "phase=completed"))
	})

	t.Run("inherited from the shell", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "rdsctl.log")
		ta := newTestApp(t, "rds describe-db-snapshot-attributes snap-1\n")

		code := ta.execute(context.Background(), []string{"--region", "us-east-1", "--log-file", logFile, "shell"})
		require.Equal(t, 0, code, ta.stderr.String())
		ta.close()

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "phase=completed")
		assert.NotContains(t, ta.stderr.String(), "phase=completed")
	})
}
