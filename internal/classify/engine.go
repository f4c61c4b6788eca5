package classify

import (
	"time"

	"github.com/inovacc/envsync/internal/model"
)

// FreshnessWindow is how long after its last push a repository stays active.
const FreshnessWindow = 90 * 24 * time.Hour

// Engine classifies items. The zero value is not usable; call NewEngine.
type Engine struct {
	rules           RuleSet
	defaultCategory string
	window          time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithDefaultCategory overrides the fallback category.
func WithDefaultCategory(category string) Option {
	return func(e *Engine) {
		e.defaultCategory = category
	}
}

// WithFreshnessWindow overrides the dormancy threshold.
func WithFreshnessWindow(d time.Duration) Option {
	return func(e *Engine) {
		e.window = d
	}
}

// NewEngine creates an Engine for the given rule set.
func NewEngine(rules RuleSet, opts ...Option) *Engine {
	e := &Engine{
		rules:           rules,
		defaultCategory: DefaultCategory,
		window:          FreshnessWindow,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() RuleSet {
	return e.rules
}

// DefaultCategory returns the category used when no rule matches.
func (e *Engine) DefaultCategory() string {
	return e.defaultCategory
}

// Window returns the dormancy threshold.
func (e *Engine) Window() time.Duration {
	return e.window
}

// Classify returns one Environment per item, in input order. The result depends
// only on its arguments.
func (e *Engine) Classify(items []model.Item, overrides model.Overrides, now time.Time) []model.Environment {
	envs := make([]model.Environment, 0, len(items))

	for _, item := range items {
		envs = append(envs, e.classifyOne(item, overrides.Lookup(item.Name), now))
	}

	return envs
}

func (e *Engine) classifyOne(item model.Item, o model.Override, now time.Time) model.Environment {
	status := e.status(item, o, now)

	return model.Environment{
		Item:           item,
		Category:       e.category(item, o),
		Status:         status,
		DefaultEnabled: defaultEnabled(status, o),
	}
}

func (e *Engine) category(item model.Item, o model.Override) string {
	if o.Category != "" {
		return o.Category
	}

	if category, ok := e.rules.Match(item.Name, item.DescriptionText()); ok {
		return category
	}

	return e.defaultCategory
}

func (e *Engine) status(item model.Item, o model.Override, now time.Time) model.Status {
	if o.Status != "" {
		return o.Status
	}

	if item.Archived {
		return model.StatusArchived
	}

	// no push timestamp means we cannot call it dormant
	if item.PushedAt != nil && item.PushedAt.Before(now.Add(-e.window)) {
		return model.StatusDormant
	}

	return model.StatusActive
}

func defaultEnabled(status model.Status, o model.Override) bool {
	if o.DefaultEnabled != nil {
		return *o.DefaultEnabled
	}

	return status == model.StatusActive
}
