package aws

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfiles(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		input := `
[default]
region = us-east-1

[profile prod]
sso_session = corp
region=eu-west-1

[sso-session corp]
sso_start_url = https://example.awsapps.com/start
`
		profiles, err := parseProfiles(strings.NewReader(input), "config", true)
		require.NoError(t, err)
		assert.Equal(t, []Profile{
			{Name: "default", Region: "us-east-1", Source: "config"},
			{Name: "prod", Region: "eu-west-1", SSO: true, Source: "config"},
		}, profiles)
	})

	t.Run("credentials file", func(t *testing.T) {
		input := `
# comment
[dev]
aws_access_key_id = AKIA
[ci]
`
		profiles, err := parseProfiles(strings.NewReader(input), "credentials", false)
		require.NoError(t, err)
		assert.Equal(t, []Profile{
			{Name: "dev", Source: "credentials"},
			{Name: "ci", Source: "credentials"},
		}, profiles)
	})

	t.Run("comments and stray keys", func(t *testing.T) {
		input := `
output = json
; legacy comment
[ profile analytics ]
region = us-west-2
sso_start_url = https://example.awsapps.com/start
[services local]
endpoint_url = http://localhost:4566
`
		profiles, err := parseProfiles(strings.NewReader(input), "config", true)
		require.NoError(t, err)
		assert.Equal(t, []Profile{
			{Name: "analytics", Region: "us-west-2", SSO: true, Source: "config"},
		}, profiles)
	})
}

func TestListProfiles(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials")
	cfg := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(creds, []byte("[staging]\n[default]\n"), 0600))
	require.NoError(t, os.WriteFile(cfg, []byte("[profile staging]\nregion = ap-southeast-1\n[profile analytics]\n"), 0600))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", creds)
	t.Setenv("AWS_CONFIG_FILE", cfg)

	profiles, err := ListProfiles()
	require.NoError(t, err)

	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"default", "analytics", "staging"}, names)
	assert.Equal(t, "ap-southeast-1", profiles[2].Region)
	assert.Equal(t, "credentials", profiles[2].Source)

	assert.True(t, ProfileExists("analytics"))
	assert.False(t, ProfileExists("missing"))
}
