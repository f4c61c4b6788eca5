package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.ini"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultOrg, cfg.GitHub.Org)
	assert.Empty(t, cfg.Source)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.ini"), true)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %T", err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[github]
org = acme

[output]
report = out/ENVIRONMENTS.md
overrides = policy/overrides.yaml

[publish]
endpoint = https://codex.example.com
token = ignored
`), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.GitHub.Org)
	assert.Equal(t, DefaultAPIURL, cfg.GitHub.APIURL)
	assert.Equal(t, "out/ENVIRONMENTS.md", cfg.Output.Report)
	assert.Equal(t, DefaultStatePath, cfg.Output.State)
	assert.Equal(t, "policy/overrides.yaml", cfg.Output.Overrides)
	assert.Equal(t, "https://codex.example.com", cfg.Publish.Endpoint)
	assert.Empty(t, cfg.Publish.Token, "token must not come from the file")
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[github\norg = acme\n"), 0644))

	_, err := Load(path, false)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %T", err)
	assert.Equal(t, path, cfgErr.Path)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvOrg:          "from-env",
		EnvAPIURL:       "https://ghe.example.com/api/v3/",
		EnvPublishURL:   "https://codex.example.com",
		EnvPublishToken: "tok",
	}

	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "from-env", cfg.GitHub.Org)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.GitHub.APIURL)
	assert.Equal(t, "https://codex.example.com", cfg.Publish.Endpoint)
	assert.Equal(t, "tok", cfg.Publish.Token)
}

func TestApplyEnv_BlankKeepsExisting(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(string) string { return "  " })

	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.GitHub.Org = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.State = ""
	require.Error(t, cfg.Validate())
}

func TestValidateOrgName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"sovereign-codex", false},
		{"Acme_Corp", false},
		{"", true},
		{"../etc", true},
		{"a/b", true},
		{"a b", true},
		{"org?x=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrgName(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}
