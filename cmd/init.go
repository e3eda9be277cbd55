package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/autodeck/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize autodeck configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure autodeck, writes a .autodeck.yml file and a starter deck if none exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
