package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")
		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			printReport(out, a.Report(cmd.Context()))
			printModes(out, a.ModeBreakdown(cmd.Context()))
			printHistory(out, a, cmd, recent)
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent quizzes to list")
}

func row(out io.Writer, label string, value any) {
	fmt.Fprintln(out, theme.Label.Render(label)+theme.Value.Render(fmt.Sprint(value)))
}

func printReport(out io.Writer, r app.Report) {
	lvl := r.Level
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s Level %d · %s", lvl.Current.Icon, lvl.Current.Number, lvl.Current.Name)))
	if lvl.IsMax {
		fmt.Fprintln(out, theme.Hint.Render("Top level reached"))
	} else {
		fmt.Fprintln(out, components.NewProgressBar("Next level", lvl.Percent, true, 50).View())
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d points to %s", lvl.PointsToNext, lvl.Next.Name)))
	}
	fmt.Fprintln(out)

	s := r.Stats
	row(out, "Points", s.TotalPoints)
	row(out, "Answered", fmt.Sprintf("%d (%d correct)", s.TotalAnswered, s.CorrectAnswers))
	row(out, "Accuracy", fmt.Sprintf("%.1f%%", s.AverageAccuracy))
	row(out, "Answer streak", fmt.Sprintf("%d (best %d)", s.CurrentStreak, s.MaxStreak))
	row(out, "Mastered", s.MasteredCount)
	row(out, "Learning", s.LearningCount)
	row(out, "Struggling", s.StrugglingCount)
	fmt.Fprintln(out)

	rv := r.Review
	row(out, "Words reviewed", rv.TotalItems)
	row(out, "Due today", rv.DueToday)
	row(out, "Average ease", fmt.Sprintf("%.2f", rv.AverageEase))
	row(out, "Total reviews", rv.TotalReviews)

	if len(r.Badges) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Badges"))
		for _, b := range r.Badges {
			fmt.Fprintf(out, "  %s %s %s\n", b.Icon, theme.Value.Render(b.Name), theme.Hint.Render(b.Description))
		}
	}
}

func printModes(out io.Writer, modes []app.ModeTally) {
	if len(modes) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("By mode"))
	for _, m := range modes {
		pct := 0.0
		if m.Total > 0 {
			pct = float64(m.Correct) / float64(m.Total) * 100
		}
		fmt.Fprintln(out, components.NewProgressBar(fmt.Sprintf("%s (%d)", m.Mode, m.Quizzes), pct, true, 50).View())
	}
}

func printHistory(out io.Writer, a *app.App, cmd *cobra.Command, n int) {
	recent := a.History(cmd.Context(), n)
	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("Recent quizzes"))
	for _, e := range recent {
		mode := e.Mode
		if e.Difficulty != "" {
			mode += "/" + e.Difficulty
		}
		fmt.Fprintf(out, "  %s  %-16s %d/%d  %3d%%  %d pts\n",
			e.Date.Local().Format("Jan 02 15:04"), mode, e.QuestionsCorrect, e.QuestionsTotal, e.Accuracy, e.Score)
	}
}
