package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the analysis gateway is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Health(cmd.Context())
		if err != nil {
			cmd.Printf("Gateway:  %s\n", cfg.GatewayURL)
			cmd.Printf("Status:   unreachable (%v)\n", err)
			return nil
		}
		cmd.Printf("Gateway:  %s\n", cfg.GatewayURL)
		cmd.Printf("Service:  %s\n", st.Name)
		cmd.Printf("Status:   %s\n", st.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
