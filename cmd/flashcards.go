package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/flashcards"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var flashcardsCmd = &cobra.Command{
	Use:     "flashcards",
	Aliases: []string{"cards"},
	Short:   "Review words as flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		fromBookmarks, _ := cmd.Flags().GetBool("bookmarks")
		count, _ := cmd.Flags().GetInt("count")

		src := flashcards.SourceReview
		if fromBookmarks {
			src = flashcards.SourceBookmarks
		}
		return withApp(cmd, func(a *app.App) error {
			return runFlashcards(cmd, a, src, count)
		})
	},
}

func init() {
	flashcardsCmd.Flags().Bool("bookmarks", false, "Study bookmarked words instead of the review queue")
	flashcardsCmd.Flags().IntP("count", "n", 0, "Number of cards (default from WORDIZ_QUIZ_SIZE)")
}

func runFlashcards(cmd *cobra.Command, a *app.App, src flashcards.Source, count int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	deck, err := a.StartFlashcards(ctx, src, count)
	if err != nil {
		return err
	}

	for !deck.Done() {
		card := deck.Current()
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", deck.Position(), deck.Len())))
		fmt.Fprintln(out, theme.Card.Render(theme.Title.Render(card.Prompt)))

		if _, err := p.line("Press Enter to reveal, q to quit "); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			return err
		}
		fmt.Fprintln(out, theme.Card.Render(theme.Body.Render(card.Answer)))

		known, err := p.yesNo("Did you know it? [y/n]: ")
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
		v := flashcards.DontKnow
		if known {
			v = flashcards.Know
		}
		if _, err := a.GradeCard(ctx, deck, v); err != nil {
			return err
		}
	}

	sum := deck.Summary()
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("Session complete"))
	fmt.Fprintln(out, theme.Label.Render("Known")+theme.Correct.Render(fmt.Sprint(sum.Known)))
	fmt.Fprintln(out, theme.Label.Render("Still learning")+theme.Incorrect.Render(fmt.Sprint(sum.Unknown)))
	fmt.Fprintln(out, components.NewProgressBar("Known", float64(sum.Percent()), true, 50).View())
	return nil
}
