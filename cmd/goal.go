package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [preset]",
	Short: "Show or set the daily goal",
	Long: "Show today's goal progress and streak. Pass a preset (casual, regular, " +
		"serious, intense) or --questions and --points to change the goal. " +
		"--protect spends a streak shield on a single missed day.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		questions, _ := cmd.Flags().GetInt("questions")
		points, _ := cmd.Flags().GetInt("points")
		protect, _ := cmd.Flags().GetBool("protect")

		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 1:
				if err := a.SetGoalPreset(ctx, args[0]); err != nil {
					return err
				}
			case cmd.Flags().Changed("questions") || cmd.Flags().Changed("points"):
				if err := a.SetCustomGoal(ctx, questions, points); err != nil {
					return err
				}
			}
			if protect {
				if a.ProtectStreak(ctx) {
					fmt.Fprintln(out, theme.Correct.Render("Streak protected with a shield."))
				} else {
					fmt.Fprintln(out, theme.Hint.Render("Nothing to protect."))
				}
			}
			printGoal(out, a.Goal(ctx))
			return nil
		})
	},
}

func init() {
	goalCmd.Flags().Int("questions", 0, "Custom goal: questions per day")
	goalCmd.Flags().Int("points", 0, "Custom goal: points per day")
	goalCmd.Flags().Bool("protect", false, "Use a streak shield for yesterday")
}

func printGoal(out io.Writer, g app.GoalStatus) {
	name := g.Goal.Name
	if !g.Custom {
		name += " (" + string(g.Preset) + ")"
	}
	fmt.Fprintln(out, theme.Title.Render("Daily goal · "+name))
	fmt.Fprintln(out, components.NewProgressBar("Today", g.Percent, true, 50).View())
	row(out, "Questions", fmt.Sprintf("%d/%d", g.Today.QuestionsAnswered, g.Goal.Questions))
	row(out, "Points", fmt.Sprintf("%d/%d", g.Today.PointsEarned, g.Goal.Points))

	week := ""
	for _, d := range g.Week {
		mark := theme.Hint.Render("·")
		if d.Completed {
			mark = theme.Correct.Render("✓")
		}
		week += d.DayName()[:2] + " " + mark + "  "
	}
	fmt.Fprintln(out, theme.Label.Render("This week")+week)

	s := g.Streak
	row(out, "Goal streak", fmt.Sprintf("%d days", s.Length))
	row(out, "Shields", s.Shields)
	if s.Earned > 0 {
		fmt.Fprintln(out, theme.Highlight.Render(fmt.Sprintf("You earned %d streak shield(s)!", s.Earned)))
	}
	switch s.Status {
	case goals.StreakProtectable:
		fmt.Fprintln(out, theme.Highlight.Render("You missed yesterday. Run `wordiz goal --protect` to keep your streak."))
	case goals.StreakBroken:
		fmt.Fprintln(out, theme.Incorrect.Render("Streak broken. Start a new one today!"))
	}
}
