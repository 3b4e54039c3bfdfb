package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	Long: "Start a multiple-choice quiz. Modes: vocab, synonym, antonym, acronym, oneword. " +
		"Vocabulary, synonym and antonym quizzes take a difficulty (easy, medium, hard).",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		diff, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")

		mode, err := session.ParseMode(modeName)
		if err != nil {
			return err
		}
		d := catalog.Difficulty(diff)
		if !mode.NeedsDifficulty() {
			d = ""
		}

		return withApp(cmd, func(a *app.App) error {
			return runQuiz(cmd, a, mode, d, count)
		})
	},
}

func init() {
	playCmd.Flags().StringP("mode", "m", string(session.ModeVocab), "Quiz mode")
	playCmd.Flags().StringP("difficulty", "d", string(catalog.Easy), "Difficulty for vocab, synonym and antonym quizzes")
	playCmd.Flags().IntP("count", "n", 0, "Number of questions (default from WORDIZ_QUIZ_SIZE)")
}

func runQuiz(cmd *cobra.Command, a *app.App, mode session.Mode, d catalog.Difficulty, count int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	s, err := a.StartQuiz(ctx, mode, d, count)
	if err != nil {
		return err
	}

	title := mode.DisplayName()
	if d != "" {
		title += " · " + string(d)
	}
	fmt.Fprintln(out, theme.Title.Render(title))

	for !s.Done() {
		q := s.Current()
		view := components.NewChoices(
			fmt.Sprintf("Question %d of %d", s.Position(), len(s.Questions)),
			q.Prompt, q.Options, q.AnswerIndex())
		fmt.Fprintln(out)
		fmt.Fprint(out, view.View())

		asked := time.Now()
		idx, err := p.choice(len(q.Options))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}

		res, err := a.Answer(ctx, s, q.Options[idx], time.Since(asked))
		if err != nil {
			return err
		}
		view.Chosen = idx
		fmt.Fprint(out, view.View())
		printResult(out, res)
	}

	if len(s.Results) == 0 {
		fmt.Fprintln(out, theme.Hint.Render("No questions answered."))
		return nil
	}
	printSummary(out, a.FinishQuiz(ctx, s))
	return nil
}

func printResult(out io.Writer, res session.Result) {
	if res.Correct {
		fmt.Fprintln(out, theme.Correct.Render(fmt.Sprintf("Correct! +%d points", res.Points)))
	} else {
		fmt.Fprintln(out, theme.Incorrect.Render("Wrong. The answer is "+res.Question.Answer))
	}
	if t := res.Transition; t != nil {
		fmt.Fprintf(out, "%s is now %s\n", t.ItemID, theme.MasteryStyle(t.To).Render(t.To.DisplayName()))
	}
	for _, b := range res.NewBadges {
		fmt.Fprintln(out, theme.Highlight.Render(fmt.Sprintf("%s Badge unlocked: %s", b.Icon, b.Name)))
	}
	if res.LevelUp {
		fmt.Fprintln(out, theme.Highlight.Render(fmt.Sprintf("%s Level up! You are now a %s", res.Level.Icon, res.Level.Name)))
	}
	if res.GoalCompleted {
		fmt.Fprintln(out, theme.Highlight.Render("Daily goal complete!"))
	}
}

func printSummary(out io.Writer, sum session.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("Quiz complete"))
	fmt.Fprintln(out, theme.Label.Render("Score")+theme.Value.Render(fmt.Sprint(sum.Score)))
	fmt.Fprintln(out, theme.Label.Render("Correct")+theme.Value.Render(fmt.Sprintf("%d/%d", sum.Correct, sum.Total)))
	fmt.Fprintln(out, components.NewProgressBar("Accuracy", sum.Accuracy, true, 50).View())
	fmt.Fprintln(out, theme.Label.Render("Grade")+theme.Value.Render(sum.Grade))
	fmt.Fprintln(out, theme.Label.Render("Time")+theme.Value.Render(sum.Duration.Round(time.Second).String()))
	if len(sum.Missed) > 0 {
		fmt.Fprintln(out, theme.Label.Render("Review")+theme.Incorrect.Render(strings.Join(sum.Missed, ", ")))
	}
}

