package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/evload/core/factory"
	"github.com/kilianp07/evload/core/metrics"
	"github.com/kilianp07/evload/infra/monitoring"
	"github.com/kilianp07/evload/infra/mqtt"
)

type Config struct {
	Server   ServerConfig            `json:"server"`
	Model    factory.ModuleConfig    `json:"model"`
	Features FeaturesConfig          `json:"features"`
	Metrics  metrics.Config          `json:"metrics"`
	Logging  LoggingConfig           `json:"logging"`
	Sentry   monitoring.SentryConfig `json:"sentry"`
	MQTT     mqtt.Config             `json:"mqtt"`
}

// Default returns a configuration holding only default values.
func Default() *Config {
	cfg := &Config{Features: DefaultFeatures()}
	cfg.SetDefaults()
	return cfg
}

// Load reads a YAML or JSON file, applies K_ prefixed environment overrides
// (K_SERVER__ADDRESS overrides server.address) and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	// Feature defaults are pre-filled so a partial features.defaults section
	// only replaces the keys it names.
	cfg := Config{Features: DefaultFeatures()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Model.Type == "" {
		return fmt.Errorf("model.type is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Sentry.Validate(); err != nil {
		return err
	}
	return c.MQTT.Validate()
}
