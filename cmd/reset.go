package cmd

import (
	"fmt"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		info, _ := cmd.Flags().GetBool("info")
		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			if info {
				i := a.StorageInfo(cmd.Context())
				row(out, "Version", i.Version)
				row(out, "Size", fmt.Sprintf("%.1f KB", i.KB()))
				row(out, "Review records", i.ReviewRecords)
				row(out, "Bookmarks", i.Bookmarks)
				row(out, "Quizzes", i.QuizHistory)
				row(out, "Goal days", i.DailyGoalHistory)
				row(out, "Degraded", i.Degraded)
				return nil
			}
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			a.Reset(cmd.Context(), true)
			fmt.Fprintln(out, theme.Correct.Render("All progress has been reset."))
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deleting all progress")
	resetCmd.Flags().Bool("info", false, "Show storage usage instead of resetting")
}
