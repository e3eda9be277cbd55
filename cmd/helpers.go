package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ziadkadry99/autodeck/internal/config"
	"github.com/ziadkadry99/autodeck/internal/deck"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `autodeck init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadDeck loads the deck named on the command line, or the configured one.
func loadDeck(cfg *config.Config, args []string) (*deck.Deck, string, error) {
	path := cfg.Deck
	if len(args) > 0 {
		path = args[0]
	}
	d, err := deck.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("loading deck: %w\nRun `autodeck init` to write a starter deck", err)
	}
	return d, path, nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
