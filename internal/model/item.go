package model

import "time"

// Item is a repository record fetched from the remote organization.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FullName    string     `json:"fullName"`
	URL         string     `json:"url"`
	Description *string    `json:"description"`
	Archived    bool       `json:"archived"`
	PushedAt    *time.Time `json:"pushedAt"`
}

// DescriptionText returns the description or an empty string when unset.
func (i Item) DescriptionText() string {
	if i.Description == nil {
		return ""
	}

	return *i.Description
}
