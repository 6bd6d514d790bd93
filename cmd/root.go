package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fakeyudi/clausesense/internal/config"
	"github.com/fakeyudi/clausesense/internal/gateway"
	"github.com/fakeyudi/clausesense/internal/logger"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// log is the shared file-backed logger.
var log *zap.Logger = zap.NewNop()

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "clausesense",
	Short: "Review contracts through the ClauseSense analysis gateway",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First-run: config missing → run setup wizard automatically.
		// Only do this when stdin is an interactive terminal.
		if !config.Exists() {
			if term.IsTerminal(os.Stdin.Fd()) {
				fmt.Println()
				fmt.Println("  Welcome to clausesense! Looks like this is your first time.")
				if _, err := config.RunSetup(nil); err != nil {
					return err
				}
			}
			// Non-interactive (tests, pipes): continue with defaults.
		}

		// Load and merge config files, then overlay the environment.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.ApplyEnv(config.Merge(global, project))

		// The review screen owns the terminal; everything else may tee
		// warnings to stderr.
		log = logger.New(debugFlag, cmd.Name() != "review")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// newClient builds a gateway client from the merged config.
func newClient() *gateway.Client {
	return gateway.New(cfg.GatewayURL, cfg.Timeout(), log)
}
