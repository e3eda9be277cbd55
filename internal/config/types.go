package config

import "time"

// Config is the top-level autodeck configuration, corresponding to .autodeck.yml.
type Config struct {
	Deck    string        `yaml:"deck" koanf:"deck"`
	Present PresentConfig `yaml:"present" koanf:"present"`
	Site    SiteConfig    `yaml:"site" koanf:"site"`
}

// PresentConfig holds terminal presenter settings.
type PresentConfig struct {
	// Threshold is the scroll-spy activation line in rows from the top of
	// the viewport.
	Threshold       int  `yaml:"threshold" koanf:"threshold"`
	SettleDelayMS   int  `yaml:"settle_delay_ms" koanf:"settle_delay_ms"`
	FrameIntervalMS int  `yaml:"frame_interval_ms" koanf:"frame_interval_ms"`
	ScrollStep      int  `yaml:"scroll_step" koanf:"scroll_step"`
	StartPresenting bool `yaml:"start_presenting" koanf:"start_presenting"`
}

// SettleDelay returns the programmatic scroll settle delay.
func (p PresentConfig) SettleDelay() time.Duration {
	return time.Duration(p.SettleDelayMS) * time.Millisecond
}

// FrameInterval returns the animation frame interval.
func (p PresentConfig) FrameInterval() time.Duration {
	return time.Duration(p.FrameIntervalMS) * time.Millisecond
}

// SiteConfig holds static site and dev server settings.
type SiteConfig struct {
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	Port      int      `yaml:"port" koanf:"port"`
	AllowAll  bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Open      bool     `yaml:"open" koanf:"open"`
	Highlight string   `yaml:"highlight_style" koanf:"highlight_style"`
	Watch     []string `yaml:"watch" koanf:"watch"`
}
