// Package auth provides ordered token resolution.
// Sources are consulted in the order they were added; the first non-empty
// token wins.
package auth

import (
	"fmt"
	"os"
	"strings"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"
)

// Source is the kind of place a token came from.
type Source string

const (
	SourceFlag Source = "flag"
	SourceEnv  Source = "env"
	SourceCLI  Source = "cli"
	SourceNone Source = "none"
)

// Result is a looked-up token.
type Result struct {
	Token  string
	Source Source
	Name   string // The specific source name (e.g., "GITHUB_TOKEN", "cli:github.com")
}

// Found reports whether a token was resolved.
func (r *Result) Found() bool {
	return r != nil && r.Token != ""
}

// TokenProvider yields a token and the name of where it was found. An absent
// token is ("", "", nil); err is reserved for lookups that broke.
type TokenProvider func() (token string, sourceName string, err error)

// Resolver walks its providers in the order they were added.
type Resolver struct {
	providers   []TokenProvider
	serviceName string
	getenv      func(string) string
}

// NewResolver returns a Resolver with no providers. serviceName appears in errors.
func NewResolver(serviceName string) *Resolver {
	return &Resolver{
		serviceName: serviceName,
		providers:   make([]TokenProvider, 0),
		getenv:      os.Getenv,
	}
}

// WithGetenv replaces the environment lookup, mainly for tests.
func (r *Resolver) WithGetenv(getenv func(string) string) *Resolver {
	r.getenv = getenv
	return r
}

// WithFlagValue adds a flag value directly (highest priority when added first)
func (r *Resolver) WithFlagValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if v := strings.TrimSpace(value); v != "" {
			return v, "flag", nil
		}
		return "", "", nil
	})
	return r
}

// WithEnvs adds environment variables as token sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		name := envVar
		r.providers = append(r.providers, func() (string, string, error) {
			if token := strings.TrimSpace(r.getenv(name)); token != "" {
				return token, name, nil
			}
			return "", "", nil
		})
	}
	return r
}

// WithGHCLI adds the token stored by the gh CLI for host.
func (r *Resolver) WithGHCLI(host string) *Resolver {
	return r.WithProvider(func() (string, string, error) {
		if token, _ := ghauth.TokenForHost(host); token != "" {
			return token, "cli:" + host, nil
		}
		return "", "", nil
	})
}

// WithProvider appends an arbitrary provider.
func (r *Resolver) WithProvider(provider TokenProvider) *Resolver {
	r.providers = append(r.providers, provider)
	return r
}

// Lookup returns the first token found. When no source yields a token the
// result has Source == SourceNone and no error.
func (r *Resolver) Lookup() (*Result, error) {
	for _, provider := range r.providers {
		token, sourceName, err := provider()
		if err != nil {
			return nil, fmt.Errorf("%s token provider error: %w", r.serviceName, err)
		}
		if token != "" {
			return &Result{
				Token:  token,
				Source: categorizeSource(sourceName),
				Name:   sourceName,
			}, nil
		}
	}

	return &Result{Source: SourceNone, Name: string(SourceNone)}, nil
}

func categorizeSource(name string) Source {
	switch {
	case name == "flag":
		return SourceFlag
	case strings.HasPrefix(name, "cli"):
		return SourceCLI
	case name != "":
		return SourceEnv
	default:
		return SourceNone
	}
}
