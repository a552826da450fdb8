// Package memory is a process-local catalog store. It is immutable once
// built, so a single Store may serve any number of concurrent readers.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"moviesearch/movie"
)

type Catalog struct {
	Movies []movie.Movie
	Actors []movie.Actor
	Links  []movie.MovieActorLink
}

// Store implements [movie.Repository].
type Store struct {
	movies []movie.Movie
	actors map[int]movie.Actor
	cast   map[int][]int
}

// NewStore indexes c. Duplicate ids, duplicate links and links to unknown
// movies or actors are rejected.
func NewStore(c Catalog) (*Store, error) {
	s := &Store{
		movies: make([]movie.Movie, 0, len(c.Movies)),
		actors: make(map[int]movie.Actor, len(c.Actors)),
		cast:   make(map[int][]int),
	}

	seen := make(map[int]struct{}, len(c.Movies))
	for _, m := range c.Movies {
		if _, ok := seen[m.ID]; ok {
			return nil, fmt.Errorf("memory: duplicate movie id %d", m.ID)
		}
		seen[m.ID] = struct{}{}
		s.movies = append(s.movies, m)
	}
	sort.Slice(s.movies, func(i, j int) bool { return s.movies[i].ID < s.movies[j].ID })

	for _, a := range c.Actors {
		if _, ok := s.actors[a.ID]; ok {
			return nil, fmt.Errorf("memory: duplicate actor id %d", a.ID)
		}
		s.actors[a.ID] = a
	}

	linked := make(map[movie.MovieActorLink]struct{}, len(c.Links))
	for _, l := range c.Links {
		if _, ok := seen[l.MovieID]; !ok {
			return nil, fmt.Errorf("memory: link references unknown movie %d", l.MovieID)
		}
		if _, ok := s.actors[l.ActorID]; !ok {
			return nil, fmt.Errorf("memory: link references unknown actor %d", l.ActorID)
		}
		if _, ok := linked[l]; ok {
			return nil, fmt.Errorf("memory: duplicate link (%d, %d)", l.MovieID, l.ActorID)
		}
		linked[l] = struct{}{}
		s.cast[l.MovieID] = append(s.cast[l.MovieID], l.ActorID)
	}
	for _, ids := range s.cast {
		sort.Ints(ids)
	}

	return s, nil
}

func (s *Store) FindMovies(ctx context.Context, p movie.Predicate, limit int) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []movie.Movie{}
	for _, m := range s.movies {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.Matches(m, s.actorsOf(m.ID)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) CountMovies(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.movies), nil
}

// ListMovies sorts stably on top of id order, so ties keep ascending ids.
func (s *Store) ListMovies(ctx context.Context, orderBy movie.OrderBy, offset, limit int) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := make([]movie.Movie, len(s.movies))
	copy(sorted, s.movies)

	switch orderBy {
	case movie.OrderByTitle:
		sort.SliceStable(sorted, func(i, j int) bool { return strings.Compare(sorted[i].Title, sorted[j].Title) < 0 })
	case movie.OrderByGenre:
		sort.SliceStable(sorted, func(i, j int) bool { return strings.Compare(sorted[i].Genre, sorted[j].Genre) < 0 })
	}

	if offset < 0 || offset >= len(sorted) || limit <= 0 {
		return []movie.Movie{}, nil
	}
	end := offset + limit
	if limit > len(sorted)-offset {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (s *Store) ActorsByMovieIDs(ctx context.Context, movieIDs []int) (map[int][]movie.Actor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[int][]movie.Actor, len(movieIDs))
	for _, id := range movieIDs {
		if actors := s.actorsOf(id); len(actors) > 0 {
			out[id] = actors
		}
	}
	return out, nil
}

func (s *Store) actorsOf(movieID int) []movie.Actor {
	ids := s.cast[movieID]
	actors := make([]movie.Actor, len(ids))
	for i, id := range ids {
		actors[i] = s.actors[id]
	}
	return actors
}
