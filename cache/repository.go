// Package cache provides a Redis read-through layer in front of a catalog
// store. Redis failures never fail a read; the wrapped store answers instead.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"moviesearch/movie"
	"moviesearch/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultTTL    = 5 * time.Minute
	DefaultPrefix = "moviesearch"
)

type Options struct {
	TTL     time.Duration
	Prefix  string
	Metrics *metrics.Metrics
}

// Repository implements movie.Repository by decorating another one.
type Repository struct {
	inner   movie.Repository
	client  redis.Cmdable
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	ttl     time.Duration
	prefix  string
}

func NewRepository(inner movie.Repository, client redis.Cmdable, logger *zap.SugaredLogger, opts Options) *Repository {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Repository{
		inner:   inner,
		client:  client,
		logger:  logger,
		metrics: opts.Metrics,
		ttl:     opts.TTL,
		prefix:  opts.Prefix,
	}
}

func (r *Repository) FindMovies(ctx context.Context, p movie.Predicate, limit int) ([]movie.Movie, error) {
	key := fmt.Sprintf("%s:find:%d:%s", r.prefix, limit, p.Key())
	return readThrough(ctx, r, key, func() ([]movie.Movie, error) {
		return r.inner.FindMovies(ctx, p, limit)
	})
}

func (r *Repository) CountMovies(ctx context.Context) (int, error) {
	return readThrough(ctx, r, r.prefix+":count", func() (int, error) {
		return r.inner.CountMovies(ctx)
	})
}

func (r *Repository) ListMovies(ctx context.Context, orderBy movie.OrderBy, offset, limit int) ([]movie.Movie, error) {
	key := fmt.Sprintf("%s:list:%s:%d:%d", r.prefix, orderBy, offset, limit)
	return readThrough(ctx, r, key, func() ([]movie.Movie, error) {
		return r.inner.ListMovies(ctx, orderBy, offset, limit)
	})
}

// ActorsByMovieIDs caches each movie's cast under its own key, so only the
// movies missing from Redis reach the wrapped store.
func (r *Repository) ActorsByMovieIDs(ctx context.Context, movieIDs []int) (map[int][]movie.Actor, error) {
	out := make(map[int][]movie.Actor, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(movieIDs))
	for i, id := range movieIDs {
		keys[i] = r.castKey(id)
	}

	missing := movieIDs
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.metrics.CacheError()
		r.logger.Warnw("cache lookup failed", "op", "mget", "keys", len(keys), "error", err)
	} else {
		missing = nil
		for i, v := range values {
			actors, ok := r.decodeCast(keys[i], v)
			if !ok {
				r.metrics.CacheMiss()
				missing = append(missing, movieIDs[i])
				continue
			}
			r.metrics.CacheHit()
			if len(actors) > 0 {
				out[movieIDs[i]] = actors
			}
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := r.inner.ActorsByMovieIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	for _, id := range missing {
		actors := loaded[id]
		if len(actors) > 0 {
			out[id] = actors
		}
		if actors == nil {
			actors = []movie.Actor{}
		}
		raw, err := json.Marshal(actors)
		if err != nil {
			continue
		}
		pipe.Set(ctx, r.castKey(id), raw, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warnw("cache store failed", "op", "cast", "movies", len(missing), "error", err)
	}
	return out, nil
}

func (r *Repository) castKey(movieID int) string {
	return r.prefix + ":cast:" + strconv.Itoa(movieID)
}

func (r *Repository) decodeCast(key string, v interface{}) ([]movie.Actor, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	var actors []movie.Actor
	if err := json.Unmarshal([]byte(s), &actors); err != nil {
		r.logger.Warnw("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}
	return actors, true
}

func readThrough[T any](ctx context.Context, r *Repository, key string, load func() (T, error)) (T, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			r.metrics.CacheHit()
			return v, nil
		}
		r.metrics.CacheError()
		r.logger.Warnw("discarding undecodable cache entry", "key", key)
	case errors.Is(err, redis.Nil):
		r.metrics.CacheMiss()
	default:
		r.metrics.CacheError()
		r.logger.Warnw("cache lookup failed", "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	raw, err = json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warnw("cache store failed", "key", key, "error", err)
	}
	return v, nil
}
