// Package classify derives the category, status and default-enabled flag for
// each repository.
package classify

import (
	"fmt"
	"regexp"
)

// DefaultCategory is used when no rule matches.
const DefaultCategory = "modules"

// Rule assigns Category to items whose name or description matches any pattern.
type Rule struct {
	Category string
	Patterns []*regexp.Regexp
}

// Matches reports whether any pattern matches name or description.
func (r Rule) Matches(name, description string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(name) || p.MatchString(description) {
			return true
		}
	}

	return false
}

// RuleSet is an ordered list of rules; earlier rules win.
type RuleSet []Rule

// Match returns the category of the first matching rule.
func (rs RuleSet) Match(name, description string) (string, bool) {
	for _, r := range rs {
		if r.Matches(name, description) {
			return r.Category, true
		}
	}

	return "", false
}

// NewRule compiles patterns into a Rule. Patterns are case-insensitive.
func NewRule(category string, patterns ...string) (Rule, error) {
	rule := Rule{Category: category, Patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: invalid pattern %q: %w", category, p, err)
		}

		rule.Patterns = append(rule.Patterns, re)
	}

	return rule, nil
}

// MustRule is like NewRule but panics on an invalid pattern.
func MustRule(category string, patterns ...string) Rule {
	rule, err := NewRule(category, patterns...)
	if err != nil {
		panic(err)
	}

	return rule
}

// DefaultRules returns the built-in rule set. A fresh value is returned on
// every call so callers may not mutate shared state.
func DefaultRules() RuleSet {
	return RuleSet{
		MustRule("core",
			`\bsi-core\b`,
			`\bcore\b`,
			`manifest`,
			`shared`,
			`infra`,
			`kernel`,
		),
		MustRule("archives",
			`archive`,
			`deprecated`,
			`legacy`,
			`prototype`,
			`experiment`,
		),
	}
}
