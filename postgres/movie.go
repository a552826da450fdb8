package postgres

import (
	"context"
	"fmt"
	"time"

	"moviesearch/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	ReleaseYear int    `gorm:"column:release_year;not null"`
	Genre       string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

type ActorModel struct {
	ID          int       `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date;not null"`
}

func (ActorModel) TableName() string {
	return "actors"
}

type MovieActorModel struct {
	MovieID int `gorm:"column:movie_id;primaryKey"`
	ActorID int `gorm:"column:actor_id;primaryKey"`
}

func (MovieActorModel) TableName() string {
	return "movie_actors"
}

// castRow is one actor of one movie, as returned by the cast join.
type castRow struct {
	MovieID     int
	ID          int
	Name        string
	DateOfBirth time.Time
}

const (
	containsTitle = "strpos(lower(trim(title)), ?) > 0"
	containsGenre = "strpos(lower(trim(genre)), ?) > 0"
	containsActor = `EXISTS (
	SELECT 1 FROM movie_actors ma
	JOIN actors a ON a.id = ma.actor_id
	WHERE ma.movie_id = movies.id AND strpos(lower(trim(a.name)), ?) > 0)`

	// restartIdentity moves an identity sequence past the highest stored id
	// so ids assigned by the store never collide with imported ones.
	restartIdentity = `SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT COALESCE(MAX(id), 0) + 1 FROM %s), false)`

	castQuery = `
SELECT ma.movie_id, a.id, a.name, a.date_of_birth
FROM movie_actors ma
JOIN actors a ON a.id = ma.actor_id
WHERE ma.movie_id IN ?
ORDER BY ma.movie_id, a.id`
)

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindMovies translates every criterion of p into one WHERE term. strpos is
// used instead of LIKE so that '%' and '_' in a term match literally.
func (r *MovieRepository) FindMovies(ctx context.Context, p movie.Predicate, limit int) ([]movie.Movie, error) {
	q := r.db.WithContext(ctx).Model(&MovieModel{})
	for _, c := range p.Criteria() {
		switch c.Field {
		case movie.FieldTitle:
			q = q.Where(containsTitle, c.Term)
		case movie.FieldGenre:
			q = q.Where(containsGenre, c.Term)
		case movie.FieldActorName:
			q = q.Where(containsActor, c.Term)
		default:
			return nil, fmt.Errorf("postgres: unsupported search field %s", c.Field)
		}
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []MovieModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: find movies: %w", err)
	}
	return toMovies(models), nil
}

func (r *MovieRepository) CountMovies(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("postgres: count movies: %w", err)
	}
	return int(n), nil
}

// ListMovies returns one window of the catalog. Rows tied on the sort column
// come back in whatever order the planner chooses. A negative offset or
// non-positive limit is an empty window; gorm would otherwise drop the clause.
func (r *MovieRepository) ListMovies(ctx context.Context, orderBy movie.OrderBy, offset, limit int) ([]movie.Movie, error) {
	if offset < 0 || limit <= 0 {
		return []movie.Movie{}, nil
	}

	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order(orderColumn(orderBy)).
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: list movies: %w", err)
	}
	return toMovies(models), nil
}

func (r *MovieRepository) ActorsByMovieIDs(ctx context.Context, movieIDs []int) (map[int][]movie.Actor, error) {
	out := make(map[int][]movie.Actor, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}

	var rows []castRow
	if err := r.db.WithContext(ctx).Raw(castQuery, movieIDs).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: load cast: %w", err)
	}
	for _, row := range rows {
		out[row.MovieID] = append(out[row.MovieID], movie.Actor{
			ID:          row.ID,
			Name:        row.Name,
			DateOfBirth: row.DateOfBirth,
		})
	}
	return out, nil
}

// ImportCatalog upserts movies and actors and adds any missing links, all in
// one transaction. Imported rows keep their ids; the identity sequences are
// then advanced past them.
func (r *MovieRepository) ImportCatalog(ctx context.Context, movies []movie.Movie, actors []movie.Actor, links []movie.MovieActorLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

		if len(movies) > 0 {
			models := make([]MovieModel, len(movies))
			for i, m := range movies {
				models[i] = MovieModel{
					ID:          m.ID,
					Title:       m.Title,
					Description: m.Description,
					ReleaseYear: m.ReleaseYear,
					Genre:       m.Genre,
				}
			}
			if err := tx.Clauses(upsert).CreateInBatches(models, 500).Error; err != nil {
				return fmt.Errorf("postgres: import movies: %w", err)
			}
			if err := syncIdentity(tx, MovieModel{}.TableName()); err != nil {
				return err
			}
		}

		if len(actors) > 0 {
			models := make([]ActorModel, len(actors))
			for i, a := range actors {
				models[i] = ActorModel{ID: a.ID, Name: a.Name, DateOfBirth: a.DateOfBirth}
			}
			if err := tx.Clauses(upsert).CreateInBatches(models, 500).Error; err != nil {
				return fmt.Errorf("postgres: import actors: %w", err)
			}
			if err := syncIdentity(tx, ActorModel{}.TableName()); err != nil {
				return err
			}
		}

		if len(links) > 0 {
			models := make([]MovieActorModel, len(links))
			for i, l := range links {
				models[i] = MovieActorModel{MovieID: l.MovieID, ActorID: l.ActorID}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(models, 500).Error; err != nil {
				return fmt.Errorf("postgres: import links: %w", err)
			}
		}
		return nil
	})
}

func syncIdentity(tx *gorm.DB, table string) error {
	if err := tx.Exec(fmt.Sprintf(restartIdentity, table), table).Error; err != nil {
		return fmt.Errorf("postgres: sync %s ids: %w", table, err)
	}
	return nil
}

func orderColumn(o movie.OrderBy) string {
	switch o {
	case movie.OrderByTitle:
		return "title"
	case movie.OrderByGenre:
		return "genre"
	default:
		return "id"
	}
}

func toMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = movie.Movie{
			ID:          model.ID,
			Title:       model.Title,
			Description: model.Description,
			ReleaseYear: model.ReleaseYear,
			Genre:       model.Genre,
		}
	}
	return movies
}
