package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviesearch/cache"
	"moviesearch/httpserver"
	"moviesearch/memory"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/pkg/logger"
	"moviesearch/pkg/metrics"
	"moviesearch/pkg/sentry"
	"moviesearch/postgres"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(bootstrap)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		slog.Error("Cannot build logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		sentry.Fatal(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unreachable, lookups will fall through to the store", "addr", cfg.Redis.Addr, "error", err)
			sentry.Warningf("redis at %s unreachable: %v", cfg.Redis.Addr, err)
		}
		repo = cache.NewRepository(repo, client, log, cache.Options{
			TTL:     cfg.CacheTTL(),
			Metrics: m,
		})
		log.Infow("catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.CacheTTL())
	}

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMetrics(m),
		httpserver.WithMovieService(movie.NewUsecase(repo)),
	)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server started!", "addr", server.Addr, "driver", cfg.DB.Driver)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infow("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg *config.Config) (movie.Repository, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store, err := memory.NewStore(memory.SampleCatalog())
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:          cfg.DB.Name,
			DBUser:          cfg.DB.User,
			Password:        cfg.DB.Pass,
			Host:            cfg.DB.Host,
			Port:            fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:         cfg.DB.EnableSSL,
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open postgres connection: %w", err)
		}
		closeDB := func() {
			_ = postgres.Close(db)
		}
		return postgres.NewMovieRepository(db), closeDB, nil
	}
}
