package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCommand_WritesThenIsIdempotent(t *testing.T) {
	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "legacy-x", "full_name": "acme/legacy-x", "html_url": "https://github.com/acme/legacy-x", "archived": true},
		})
	}))
	defer gh.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[github]\napi_url = "+gh.URL+"\n"), 0644))

	report := filepath.Join(dir, "ENV.md")
	state := filepath.Join(dir, "state", "env.json")

	t.Setenv("CODEX_API_URL", "")
	t.Setenv("CODEX_API_TOKEN", "")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("GITHUB_ORG", "")

	args := []string{"sync",
		"--config", cfgPath,
		"--org", "acme",
		"--output", report,
		"--json", state,
		"--overrides", filepath.Join(dir, "none.json"),
		"--token", "test-token",
		"--log-level", "error",
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Updated "+report)
	assert.Contains(t, out.String(), "Updated "+state)
	assert.Contains(t, out.String(), "Skipped publish")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| legacy-x | https://github.com/acme/legacy-x | archives | archived | no |")

	out.Reset()
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), report+" already up to date.")
	assert.Contains(t, out.String(), state+" already up to date.")
}

func TestSyncCommand_SinkFailurePrintsNoStatus(t *testing.T) {
	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer gh.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[github]\napi_url = "+gh.URL+"\n"), 0644))

	report := filepath.Join(dir, "ENV.md")
	require.NoError(t, os.MkdirAll(report, 0755))

	t.Setenv("CODEX_API_URL", "")
	t.Setenv("CODEX_API_TOKEN", "")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("GITHUB_ORG", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"sync",
		"--config", cfgPath,
		"--org", "acme",
		"--output", report,
		"--json", filepath.Join(dir, "env.json"),
		"--overrides", filepath.Join(dir, "none.json"),
		"--token", "test-token",
		"--log-level", "error",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
	assert.NotContains(t, out.String(), "already up to date")
	assert.NotContains(t, out.String(), "Updated")
	assert.NoFileExists(t, filepath.Join(dir, "env.json"))
}
