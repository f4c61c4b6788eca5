package overrides

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/envsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoad_MissingFile(t *testing.T) {
	got, err := NewStore(filepath.Join(t.TempDir(), "overrides.json")).Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "overrides.json", `{
  "core-api": {"category": "core"},
  "old-tool": {"status": "active", "defaultEnabled": false},
  "sandbox": {"defaultEnabled": true},
  "plain": {}
}`)

	got, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "core", got["core-api"].Category)
	assert.Nil(t, got["core-api"].DefaultEnabled)

	assert.Equal(t, model.StatusActive, got["old-tool"].Status)
	require.NotNil(t, got["old-tool"].DefaultEnabled)
	assert.False(t, *got["old-tool"].DefaultEnabled)

	require.NotNil(t, got["sandbox"].DefaultEnabled)
	assert.True(t, *got["sandbox"].DefaultEnabled)

	assert.Equal(t, model.Override{}, got["plain"])
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "overrides.yaml", `
core-api:
  category: core
legacy-x:
  status: dormant
  defaultEnabled: false
`)

	got, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "core", got["core-api"].Category)
	assert.Equal(t, model.StatusDormant, got["legacy-x"].Status)
	require.NotNil(t, got["legacy-x"].DefaultEnabled)
	assert.False(t, *got["legacy-x"].DefaultEnabled)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"truncated json", "o.json", `{"core-api": {`},
		{"array", "o.json", `[]`},
		{"null", "o.json", `null`},
		{"empty", "o.json", "  \n"},
		{"wrong field type", "o.json", `{"x": {"defaultEnabled": "yes"}}`},
		{"unknown status", "o.json", `{"x": {"status": "retired"}}`},
		{"yaml scalar", "o.yml", `just a string`},
		{"yaml bad bool", "o.yaml", "x:\n  defaultEnabled: maybe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			_, err := NewStore(path).Load()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %T", err)
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigError{Path: "/tmp/o.json", Err: inner}

	assert.Equal(t, "invalid override file /tmp/o.json: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
