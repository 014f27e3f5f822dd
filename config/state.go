package config

import "fmt"

// StateConfig locates the persisted learned state.
type StateConfig struct {
	// Path is the JSON snapshot file location.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StateConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "pitchstream-state.json"
	}
}

// Validate checks mandatory fields.
func (c StateConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("state path is required")
	}
	return nil
}
