package main

import (
	"fmt"
	"log/slog"
	"os"

	"moviesearch/memory"
	"moviesearch/pkg/config"
	"moviesearch/postgres"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "movieseed",
		Short:         "Load movies, actors and cast links into the catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSampleCmd(), newMovieLensCmd())
	return root
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Load the built-in demo catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			c := memory.SampleCatalog()
			if err := repo.ImportCatalog(cmd.Context(), c.Movies, c.Actors, c.Links); err != nil {
				return err
			}

			slog.Info("import completed", "movies", len(c.Movies), "actors", len(c.Actors), "links", len(c.Links))
			return nil
		},
	}
}

// openRepository connects to the catalog database. The returned func closes
// the connection pool.
func openRepository() (*postgres.MovieRepository, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open postgres connection: %w", err)
	}

	closeDB := func() {
		if err := postgres.Close(db); err != nil {
			slog.Warn("cannot close postgres connection", "error", err)
		}
	}
	return postgres.NewMovieRepository(db), closeDB, nil
}
