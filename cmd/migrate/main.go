package main

import (
	"database/sql"
	"log/slog"
	"os"
	"strconv"

	"moviesearch/pkg/config"
	"moviesearch/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the catalog schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "migrations", "Directory holding the migration files")

	var upLimit, downLimit int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(dir, migrate.Up, upLimit)
		},
	}
	up.Flags().IntVar(&upLimit, "limit", 0, "Apply at most this many migrations (0 = all)")

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(dir, migrate.Down, downLimit)
		},
	}
	down.Flags().IntVar(&downLimit, "limit", 1, "Roll back at most this many migrations (0 = all)")

	status := &cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sqlDB, err := openDB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
			if err != nil {
				return err
			}
			for _, r := range records {
				slog.Info("applied", "id", r.Id, "at", r.AppliedAt)
			}
			slog.Info("migration status", "applied", len(records))
			return nil
		},
	}

	root.AddCommand(up, down, status)
	return root
}

func execute(dir string, direction migrate.MigrationDirection, limit int) error {
	sqlDB, err := openDB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	total, err := migrate.ExecMax(sqlDB, "postgres", migrations, direction, limit)
	if err != nil {
		slog.Error("cannot execute migration", "error", err)
		return err
	}

	name := "up"
	if direction == migrate.Down {
		name = "down"
	}
	slog.Info("applied migrations", "total", total, "direction", name)
	return nil
}

func openDB() (*sql.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		return nil, err
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot connecting to db", "error", err)
		return nil, err
	}

	return db.DB()
}
