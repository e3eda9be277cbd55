package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [deck]",
	Short: "Validate a deck and list its sections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, path, err := loadDeck(cfg, args)
		if err != nil {
			return err
		}

		title := d.Title
		if title == "" {
			title = path
		}
		fmt.Print(title)
		if d.Version != "" {
			fmt.Printf(" (%s)", d.Version)
		}
		fmt.Printf(": %d sections\n\n", d.Len())

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tID\tLABEL\tTITLE")
		for _, s := range d.Sections {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Ordinal+1, s.ID, s.Label, s.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if verbose {
			for _, s := range d.Sections {
				fmt.Printf("\n[%s] %d bytes\n", s.ID, len(s.Body))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
