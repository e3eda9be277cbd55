package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/autodeck/internal/present"
)

var presentCmd = &cobra.Command{
	Use:   "present [deck]",
	Short: "Present a deck in the terminal",
	Long: `Opens the deck full screen. In continuous mode the whole deck scrolls
and the rail follows the section at the top of the screen. Press p to
switch to presentation mode, where arrow keys move one slide at a time
and esc returns to the document. Number keys jump to a section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresent,
}

func init() {
	presentCmd.Flags().Bool("presentation", false, "start in presentation mode")
	presentCmd.Flags().String("section", "", "id of the section to start at")
	presentCmd.Flags().String("log", "", "write debug logs to this file")
	rootCmd.AddCommand(presentCmd)
}

func runPresent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, _, err := loadDeck(cfg, args)
	if err != nil {
		return err
	}

	opts := present.Options{
		Threshold:       cfg.Present.Threshold,
		SettleDelay:     cfg.Present.SettleDelay(),
		FrameInterval:   cfg.Present.FrameInterval(),
		ScrollStep:      cfg.Present.ScrollStep,
		StartPresenting: cfg.Present.StartPresenting,
	}
	if presenting, _ := cmd.Flags().GetBool("presentation"); presenting {
		opts.StartPresenting = true
	}
	if id, _ := cmd.Flags().GetString("section"); id != "" {
		opts.StartSection = d.IndexOf(id)
		if opts.StartSection < 0 {
			return fmt.Errorf("no section with id %q (have %v)", id, d.IDs())
		}
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	if logPath, _ := cmd.Flags().GetString("log"); logPath != "" {
		f, err := tea.LogToFile(logPath, "autodeck")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return present.Run(ctx, d, opts)
}
