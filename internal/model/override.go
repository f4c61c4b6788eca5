package model

// Override is a manual policy fragment for a single repository.
// Zero values mean "not set"; DefaultEnabled is nil when not set.
type Override struct {
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	Status         Status `json:"status,omitempty" yaml:"status,omitempty"`
	DefaultEnabled *bool  `json:"defaultEnabled,omitempty" yaml:"defaultEnabled,omitempty"`
}

// Overrides maps repository name to its override.
type Overrides map[string]Override

// Lookup returns the override for name, or the zero Override.
func (o Overrides) Lookup(name string) Override {
	if o == nil {
		return Override{}
	}

	return o[name]
}

// Bool returns a pointer to b, for building overrides in code.
func Bool(b bool) *bool {
	return &b
}
