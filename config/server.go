package config

import (
	"fmt"
	"time"
)

// ServerConfig defines the HTTP listener and request limits.
type ServerConfig struct {
	Address         string        `json:"address"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	// MaxHorizonHours caps the hours parameter of a request.
	MaxHorizonHours int `json:"max_horizon_hours"`
	// DefaultHours is used when a request omits hours.
	DefaultHours int `json:"default_hours"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.MaxHorizonHours == 0 {
		c.MaxHorizonHours = 168
	}
	if c.DefaultHours == 0 {
		c.DefaultHours = 24
	}
}

// Validate checks value ranges.
func (c ServerConfig) Validate() error {
	if c.MaxHorizonHours < 1 {
		return fmt.Errorf("server.max_horizon_hours must be >= 1")
	}
	if c.DefaultHours < 1 || c.DefaultHours > c.MaxHorizonHours {
		return fmt.Errorf("server.default_hours must be within [1,%d]", c.MaxHorizonHours)
	}
	return nil
}
