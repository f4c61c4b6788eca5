package collector

import "fmt"

// OrganizationNotFoundError indicates the remote reported the organization as missing
type OrganizationNotFoundError struct {
	Org string
}

func (e *OrganizationNotFoundError) Error() string {
	return fmt.Sprintf("GitHub organization %q was not found or is inaccessible", e.Org)
}

// RemoteAPIError indicates a non-success response from the remote API
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("GitHub API responded with %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps network-level failures
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedItemError indicates a repository record lacks a required field
type MalformedItemError struct {
	Page  int
	Index int
	Field string
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("malformed repository on page %d at index %d: missing %s", e.Page, e.Index, e.Field)
}

// PageLimitError indicates pagination did not terminate within the page cap
type PageLimitError struct {
	Org   string
	Pages int
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("organization %q still returning full pages after %d pages", e.Org, e.Pages)
}
