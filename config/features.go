package config

import "github.com/kilianp07/evload/core/forecast"

// FeaturesConfig holds the contextual values used for every synthesized row.
type FeaturesConfig struct {
	Defaults forecast.Defaults `json:"defaults"`
}

// DefaultFeatures returns the built-in feature defaults.
func DefaultFeatures() FeaturesConfig {
	return FeaturesConfig{Defaults: forecast.DefaultValues()}
}
