package config

// DefaultConfigFile is the config file the CLI looks for.
const DefaultConfigFile = ".autodeck.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Deck: "deck.md",
		Present: PresentConfig{
			Threshold:       2,
			SettleDelayMS:   150,
			FrameIntervalMS: 16,
			ScrollStep:      3,
		},
		Site: SiteConfig{
			OutputDir: "site",
			Port:      8080,
			Highlight: "github",
		},
	}
}
