package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked words",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add WORD",
	Short: "Bookmark a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			added, err := a.AddBookmark(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), "Bookmarked", args[0])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), args[0], "is already bookmarked")
			}
			return nil
		})
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "remove WORD",
	Aliases: []string{"rm"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if !a.RemoveBookmark(cmd.Context(), args[0]) {
				return fmt.Errorf("%s is not bookmarked", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", args[0])
			return nil
		})
	},
}

var bookmarkNoteCmd = &cobra.Command{
	Use:   "note WORD TEXT...",
	Short: "Attach a note to a bookmark",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if !a.SetBookmarkNote(cmd.Context(), args[0], strings.Join(args[1:], " ")) {
				return fmt.Errorf("%s is not bookmarked", args[0])
			}
			return nil
		})
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bookmarks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			list := a.Bookmarks(cmd.Context())
			if len(list) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("No bookmarks yet."))
				return nil
			}
			for _, b := range list {
				fmt.Fprintf(out, "%s  %s\n", theme.Value.Render(b.Item.Prompt), theme.Subtitle.Render(b.Item.Answer))
				if b.Notes != "" {
					fmt.Fprintln(out, "  "+theme.Hint.Render(b.Notes))
				}
			}
			return nil
		})
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkRemoveCmd, bookmarkNoteCmd, bookmarkListCmd)
}
