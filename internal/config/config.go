// Package config resolves envsync settings from defaults, an optional ini
// file and environment variables. Command-line flags are layered on top by the
// cmd package.
//
// Example config.ini:
//
//	[github]
//	org     = sovereign-codex
//	api_url = https://github.example.com/api/v3/
//
//	[output]
//	report    = CODEX_ENVIRONMENTS.md
//	state     = manifests/codex-environments.json
//	overrides = manifests/codex-environment-overrides.json
//
//	[publish]
//	endpoint = https://codex.example.com
//
// Credentials are only read from the environment, never from the file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	DefaultOrg           = "sovereign-codex"
	DefaultAPIURL        = "https://api.github.com/"
	DefaultReportPath    = "CODEX_ENVIRONMENTS.md"
	DefaultStatePath     = "manifests/codex-environments.json"
	DefaultOverridesPath = "manifests/codex-environment-overrides.json"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvOrg           = "GITHUB_ORG"
	EnvAPIURL        = "GITHUB_API_URL"
	EnvPublishURL    = "CODEX_API_URL"
	EnvPublishToken  = "CODEX_API_TOKEN"
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvGitHubTokenGH = "GH_TOKEN"
)

type GitHubSection struct {
	Org    string `ini:"org"`
	APIURL string `ini:"api_url"`
}

type OutputSection struct {
	Report    string `ini:"report"`
	State     string `ini:"state"`
	Overrides string `ini:"overrides"`
}

type PublishSection struct {
	Endpoint string `ini:"endpoint"`

	// Token is never read from the file
	Token string `ini:"-"`
}

// Config holds the effective settings for a run.
type Config struct {
	GitHub  GitHubSection
	Output  OutputSection
	Publish PublishSection

	// Source is the file the settings were read from, empty when none
	Source string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		GitHub: GitHubSection{
			Org:    DefaultOrg,
			APIURL: DefaultAPIURL,
		},
		Output: OutputSection{
			Report:    DefaultReportPath,
			State:     DefaultStatePath,
			Overrides: DefaultOverridesPath,
		},
	}
}

// Load returns the defaults overlaid with the ini file at path. A missing file
// is only an error when required is true. A malformed file returns *ConfigError.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}

		return nil, &ConfigError{Path: path, Err: err}
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var (
		gh  GitHubSection
		out OutputSection
		pub PublishSection
	)

	if err := file.Section("github").MapTo(&gh); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := file.Section("output").MapTo(&out); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := file.Section("publish").MapTo(&pub); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	overlay(&cfg.GitHub.Org, gh.Org)
	overlay(&cfg.GitHub.APIURL, gh.APIURL)
	overlay(&cfg.Output.Report, out.Report)
	overlay(&cfg.Output.State, out.State)
	overlay(&cfg.Output.Overrides, out.Overrides)
	overlay(&cfg.Publish.Endpoint, pub.Endpoint)

	cfg.Source = path

	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	overlay(&c.GitHub.Org, getenv(EnvOrg))
	overlay(&c.GitHub.APIURL, getenv(EnvAPIURL))
	overlay(&c.Publish.Endpoint, getenv(EnvPublishURL))
	overlay(&c.Publish.Token, getenv(EnvPublishToken))
}

// Validate checks the settings required for a run.
func (c *Config) Validate() error {
	if err := ValidateOrgName(c.GitHub.Org); err != nil {
		return err
	}

	if c.Output.Report == "" || c.Output.State == "" {
		return fmt.Errorf("report and state paths must not be empty")
	}

	return nil
}

func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
