package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Vocabulary quizzes with spaced repetition",
	Long: "Wordiz is a terminal vocabulary trainer. It schedules words with SM-2 " +
		"spaced repetition, tracks mastery and daily goals, and keeps all " +
		"progress in a local SQLite file.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		level, _ := config.ParseLevel(cfg.LogLevel)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

var cfg config.Config

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON word catalog (overrides WORDIZ_CATALOG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WORDIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path, slog.Default())
}

// openApp opens the store and catalog and builds the App. Callers must
// Close it so pending writes reach disk.
func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	st, err := store.Open(dbPath, cfg.StorageQuota,
		store.WithLogger(slog.Default()),
		store.WithDebounce(cfg.SaveDebounce),
		store.WithAppVersion(version),
	)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a, err := app.New(app.Options{
		Store:    st,
		Catalog:  cat,
		Logger:   slog.Default(),
		QuizSize: cfg.QuizSize,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

// withApp runs fn against an opened App and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			slog.Warn("close store", "error", cerr)
		}
	}()
	return fn(a)
}
