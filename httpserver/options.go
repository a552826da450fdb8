package httpserver

import (
	"errors"
	"fmt"

	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/pkg/metrics"

	"go.uber.org/zap"
)

type Options func(s *Server) error

// WithConfig also derives the listen address and CORS origins from cfg.
func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: nil config")
		}
		s.Config = cfg
		if cfg.Port > 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		s.AllowOrigins = cfg.Origins()
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l != nil {
			s.Logger = l
		}
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) Options {
	return func(s *Server) error {
		s.Metrics = m
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}
