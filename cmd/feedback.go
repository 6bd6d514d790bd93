package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedbackRating  int
	feedbackComment string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <doc-id>",
	Short: "Submit a rating for a previously analyzed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if feedbackRating < 1 || feedbackRating > 5 {
			return fmt.Errorf("rating must be between 1 and 5, got %d", feedbackRating)
		}
		if err := newClient().Feedback(cmd.Context(), args[0], feedbackRating, feedbackComment); err != nil {
			return err
		}
		cmd.Println("Feedback recorded.")
		return nil
	},
}

func init() {
	feedbackCmd.Flags().IntVarP(&feedbackRating, "rating", "r", 0, "rating from 1 to 5 (required)")
	feedbackCmd.Flags().StringVarP(&feedbackComment, "comment", "m", "", "optional comments")
	_ = feedbackCmd.MarkFlagRequired("rating")
	rootCmd.AddCommand(feedbackCmd)
}
