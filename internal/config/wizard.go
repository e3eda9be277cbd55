package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

var highlightStyles = []string{"github", "monokai", "dracula", "solarized-light", "nord"}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It saves the config to .autodeck.yml and writes a
// starter deck when the chosen deck file does not exist yet.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to autodeck! Let's set up your deck.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Deck source.
	deckPrompt := promptui.Prompt{
		Label:   "Deck file, directory or glob",
		Default: cfg.Deck,
	}
	deckPath, err := deckPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("deck path: %w", err)
	}
	cfg.Deck = strings.TrimSpace(deckPath)

	// 2. Scroll-spy threshold.
	thresholdPrompt := promptui.Prompt{
		Label:    "Scroll-spy threshold (rows from the top)",
		Default:  strconv.Itoa(cfg.Present.Threshold),
		Validate: nonNegativeInt,
	}
	thresholdStr, err := thresholdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	cfg.Present.Threshold, _ = strconv.Atoi(strings.TrimSpace(thresholdStr))

	// 3. Site output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.Site.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.Site.OutputDir = outputDir

	// 4. Dev server port.
	portPrompt := promptui.Prompt{
		Label:    "Dev server port",
		Default:  strconv.Itoa(cfg.Site.Port),
		Validate: portNumber,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Site.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 5. Code highlighting.
	stylePrompt := promptui.Select{
		Label: "Code highlighting style",
		Items: highlightStyles,
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	cfg.Site.Highlight = style

	// 6. Extra watch paths.
	watchPrompt := promptui.Prompt{
		Label:   "Extra paths to watch while serving (comma-separated, blank for none)",
		Default: "",
	}
	watchStr, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch paths: %w", err)
	}
	cfg.Site.Watch = splitAndTrim(watchStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)

	created, err := WriteStarterDeck(cfg.Deck)
	if err != nil {
		return nil, err
	}
	if created {
		fmt.Printf("Starter deck written to %s\n", cfg.Deck)
	}
	return cfg, nil
}

// WriteStarterDeck writes the sample deck to path unless something already
// exists there or path is a glob. It reports whether a file was written.
func WriteStarterDeck(path string) (bool, error) {
	if strings.ContainsAny(path, "*?[{") {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("accessing %s: %w", path, err)
	}
	if err := os.WriteFile(path, deck.Sample(), 0644); err != nil {
		return false, fmt.Errorf("writing starter deck: %w", err)
	}
	return true, nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of rows")
	}
	return nil
}

func portNumber(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
