package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/autodeck/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "autodeck",
	Short: "Present markdown decks in the terminal or as a scrolling web page",
	Long: `Autodeck turns a markdown file into a deck of sections. Present it in
the terminal, either as one continuous scrolling document that tracks
the section you are reading or as full-screen slides, or render it to a
static single-page site with a live-reloading dev server.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

