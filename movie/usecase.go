package movie

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) ([]MovieDTO, error)
	Browse(ctx context.Context, req PageRequest) (PagedResult[MovieDTO], error)
}

// Repository is the read side of the catalog store.
type Repository interface {
	// FindMovies returns at most limit movies satisfying p, ordered by id.
	FindMovies(ctx context.Context, p Predicate, limit int) ([]Movie, error)
	// CountMovies counts the whole, unfiltered catalog.
	CountMovies(ctx context.Context) (int, error)
	// ListMovies returns one ordered window of the unfiltered catalog.
	ListMovies(ctx context.Context, orderBy OrderBy, offset, limit int) ([]Movie, error)
	// ActorsByMovieIDs loads the linked actors of the given movies only,
	// each list ordered by actor id.
	ActorsByMovieIDs(ctx context.Context, movieIDs []int) (map[int][]Actor, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) Search(ctx context.Context, req SearchRequest) ([]MovieDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	movies, err := uc.r.FindMovies(ctx, BuildPredicate(req), MaxSearchResults)
	if err != nil {
		return nil, err
	}
	if len(movies) > MaxSearchResults {
		movies = movies[:MaxSearchResults]
	}

	return uc.project(ctx, movies)
}

func (uc *Usecase) Browse(ctx context.Context, req PageRequest) (PagedResult[MovieDTO], error) {
	req = req.Normalize()

	var (
		total  int
		movies []Movie
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.r.CountMovies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		movies, err = uc.r.ListMovies(gctx, req.OrderBy, req.Offset(), req.Limit())
		return err
	})
	if err := g.Wait(); err != nil {
		return PagedResult[MovieDTO]{}, err
	}

	items, err := uc.project(ctx, movies)
	if err != nil {
		return PagedResult[MovieDTO]{}, err
	}

	return NewPagedResult(items, total, req), nil
}

func (uc *Usecase) project(ctx context.Context, movies []Movie) ([]MovieDTO, error) {
	if len(movies) == 0 {
		return []MovieDTO{}, nil
	}

	actors, err := uc.r.ActorsByMovieIDs(ctx, MovieIDs(movies))
	if err != nil {
		return nil, err
	}
	return Project(movies, actors), nil
}
