package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTODECK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (AUTODECK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: AUTODECK_DECK -> deck,
	// AUTODECK_PRESENT__THRESHOLD -> present.threshold.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Deck == "" {
		return fmt.Errorf("deck is required")
	}

	p := c.Present
	if p.Threshold < 0 {
		return fmt.Errorf("present.threshold must be non-negative")
	}
	if p.SettleDelayMS <= 0 {
		return fmt.Errorf("present.settle_delay_ms must be positive")
	}
	if p.FrameIntervalMS <= 0 || p.FrameIntervalMS > 1000 {
		return fmt.Errorf("present.frame_interval_ms must be between 1 and 1000, got %d", p.FrameIntervalMS)
	}
	if p.ScrollStep < 1 {
		return fmt.Errorf("present.scroll_step must be at least 1")
	}

	s := c.Site
	if s.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid site.port %d", s.Port)
	}
	if s.Highlight != "" {
		if _, ok := styles.Registry[s.Highlight]; !ok {
			return fmt.Errorf("unknown site.highlight_style %q", s.Highlight)
		}
	}

	return nil
}
