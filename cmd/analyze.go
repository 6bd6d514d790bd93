package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/clausesense/internal/options"
	"github.com/fakeyudi/clausesense/internal/report"
	"github.com/fakeyudi/clausesense/internal/workflow"
)

var (
	analyzeTone      string
	analyzeStructure string
	analyzeFocus     string
	analyzeSave      bool
	analyzeOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Upload a contract and print its analysis report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options.Options{
			Tone:      pick(analyzeTone, cfg.Tone),
			Structure: pick(analyzeStructure, cfg.Structure),
			Focus:     pick(analyzeFocus, cfg.Focus),
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		ctrl, err := workflow.New(workflow.Config{
			Gateway: newClient(),
			Options: opts,
			Logger:  log,
		})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := ctrl.Upload(ctx, args[0]); err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		snap := ctrl.Snapshot()
		cmd.Printf("Uploaded %s (doc %s)\n", snap.File.Name, snap.DocumentID)

		if err := ctrl.Analyze(ctx); err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		snap = ctrl.Snapshot()

		cmd.Println()
		cmd.Println(snap.Report)

		if analyzeSave || analyzeOutput != "" {
			dir := pick(analyzeOutput, cfg.OutputDir)
			path, err := report.Save(dir, snap.DocumentID, snap.Report)
			if err != nil {
				return err
			}
			cmd.Printf("Report saved to %s\n", path)
		}
		return nil
	},
}

// pick returns override when set, falling back to configured.
func pick(override, configured string) string {
	if override != "" {
		return override
	}
	return configured
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTone, "tone", "", "report tone (formal, concise, executive, risk-focused)")
	analyzeCmd.Flags().StringVar(&analyzeStructure, "structure", "", "report structure (structured, bulleted)")
	analyzeCmd.Flags().StringVar(&analyzeFocus, "focus", "", "analysis focus (full, legal, finance, compliance, operations)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "also save the report to the output directory")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "save the report into this directory")
	rootCmd.AddCommand(analyzeCmd)
}
