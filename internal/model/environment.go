package model

import "time"

// Status is the lifecycle state derived for an environment
type Status string

const (
	StatusActive   Status = "active"
	StatusDormant  Status = "dormant"
	StatusArchived Status = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDormant, StatusArchived:
		return true
	}

	return false
}

func (s Status) String() string {
	return string(s)
}

// Environment is an Item with its derived classification.
type Environment struct {
	Item

	Category       string `json:"category"`
	Status         Status `json:"status"`
	DefaultEnabled bool   `json:"defaultEnabled"`
}

// Snapshot is the complete ordered set of environments for one run.
type Snapshot struct {
	GeneratedAt  time.Time     `json:"generatedAt"`
	Organization string        `json:"org"`
	Environments []Environment `json:"environments"`
}
