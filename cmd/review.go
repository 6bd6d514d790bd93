package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/clausesense/internal/activity"
	"github.com/fakeyudi/clausesense/internal/options"
	"github.com/fakeyudi/clausesense/internal/tui"
	"github.com/fakeyudi/clausesense/internal/watch"
	"github.com/fakeyudi/clausesense/internal/workflow"
)

var watchDir string

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Open the interactive contract review screen",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := workflow.New(workflow.Config{
			Gateway: newClient(),
			Mirror:  activity.NewMirror(),
			Options: options.Options{
				Tone:      cfg.Tone,
				Structure: cfg.Structure,
				Focus:     cfg.Focus,
			},
			Logger: log,
		})
		if err != nil {
			return err
		}

		var dropped <-chan string
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if watchDir != "" {
			dropped, err = watch.Files(ctx, watchDir)
			if err != nil {
				return fmt.Errorf("watching %s: %w", watchDir, err)
			}
		}

		params := tui.Params{
			Controller:   ctrl,
			Logger:       log,
			OutputDir:    cfg.OutputDir,
			PollInterval: cfg.PollInterval(),
			Dropped:      dropped,
		}
		if len(args) == 1 {
			params.InitialFile = args[0]
		}
		return tui.Run(params)
	},
}

func init() {
	reviewCmd.Flags().StringVar(&watchDir, "watch", "", "pick up files dropped into this directory")
	rootCmd.AddCommand(reviewCmd)
}
