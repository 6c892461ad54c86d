package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig carries optional per-provider tuning loaded from
// providers.yaml. Absence of the file, or of a provider's block, means
// the provider runs with its built-in defaults.
type ProvidersConfig struct {
	Providers map[string]ProviderSettings `yaml:"providers"`
}

// ProviderSettings is the free-form tuning block handed to a provider's
// creator (endpoint overrides, timeouts, model names).
type ProviderSettings map[string]interface{}

// LoadProvidersConfig reads providers.yaml from path. A missing file is
// not an error; a malformed one is.
func LoadProvidersConfig(path string) (*ProvidersConfig, error) {
	raw, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &ProvidersConfig{Providers: map[string]ProviderSettings{}}, nil
		}
		return nil, fmt.Errorf("read providers config: %w", err)
	}

	var cfg ProvidersConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse providers config: %w", err)
	}
	if cfg.Providers == nil {
		cfg.Providers = map[string]ProviderSettings{}
	}
	return &cfg, nil
}

// SettingsByProvider converts the config into the map shape the registry
// builder expects.
func (c *ProvidersConfig) SettingsByProvider() map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(c.Providers))
	for id, s := range c.Providers {
		out[id] = s
	}
	return out
}
