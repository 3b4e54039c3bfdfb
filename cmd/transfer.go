package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export progress as JSON",
	Long:  "Write a JSON backup of all progress to FILE, or to stdout when FILE is omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			data, err := a.Export(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Exported to", args[0])
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace progress with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		return withApp(cmd, func(a *app.App) error {
			st, err := a.Import(cmd.Context(), data)
			if err != nil {
				var ie *store.ImportError
				if errors.As(err, &ie) {
					return fmt.Errorf("import failed (%s): %w", ie.Reason, ie.Err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d review records, %d bookmarks and %d quizzes.\n",
				len(st.ReviewRecords), len(st.Bookmarks), len(st.QuizHistory))
			return nil
		})
	},
}
