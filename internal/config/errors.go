package config

import (
	"fmt"
	"strings"
)

// ConfigError indicates the config file exists but cannot be used
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidateOrgName rejects organization names that would escape the
// /orgs/{org}/repos path.
func ValidateOrgName(orgName string) error {
	if orgName == "" {
		return fmt.Errorf("organization name cannot be empty")
	}

	if strings.Contains(orgName, "..") || strings.ContainsAny(orgName, "/\\?#% \t\n") {
		return fmt.Errorf("invalid organization name %q: contains illegal characters", orgName)
	}

	return nil
}
