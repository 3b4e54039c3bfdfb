package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List words due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			items := a.Due(cmd.Context(), limit)
			if len(items) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("Nothing due. Come back later!"))
				return nil
			}
			fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%d due for review", len(items))))
			for _, it := range items {
				overdue := ""
				if next := it.Record.NextReviewAt; next != nil {
					overdue = time.Since(*next).Round(time.Hour).String()
				}
				fmt.Fprintf(out, "  %-24s %-8s interval %3dd  ease %.2f  overdue %s\n",
					it.Ref.Key, it.Ref.Kind, it.Record.Interval, it.Record.EaseFactor, overdue)
			}
			return nil
		})
	},
}

func init() {
	dueCmd.Flags().IntP("limit", "n", 20, "Maximum number of items to list (0 for all)")
}
