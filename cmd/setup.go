package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/clausesense/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure clausesense (re-run anytime to edit settings)",
	// Bypass the normal PersistentPreRunE so setup works before config exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load existing config as defaults if present (edit mode).
		var existing *config.Config
		if config.Exists() {
			c, err := config.LoadGlobal()
			if err == nil {
				existing = c
			}
		}

		if _, err := config.RunSetup(existing); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		fmt.Println("  ✓ Config saved.")
		fmt.Println("  Setup complete. Run 'clausesense review' to start a review.")
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
