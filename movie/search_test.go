package movie_test

import (
	"testing"

	"moviesearch/movie"

	"github.com/stretchr/testify/assert"
)

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     movie.SearchRequest
		wantErr bool
	}{
		{name: "all absent", req: movie.SearchRequest{}, wantErr: true},
		{name: "all whitespace", req: movie.SearchRequest{Title: " ", Genre: "\t", ActorName: "  \n"}, wantErr: true},
		{name: "title only", req: movie.SearchRequest{Title: "matrix"}},
		{name: "genre only", req: movie.SearchRequest{Genre: "drama"}},
		{name: "actor only", req: movie.SearchRequest{ActorName: "hanks"}},
		{name: "padded term", req: movie.SearchRequest{Title: "  x  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Equal(t, movie.ErrNoSearchCriteria, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildPredicate(t *testing.T) {
	t.Run("one criterion per provided field, normalized", func(t *testing.T) {
		p := movie.BuildPredicate(movie.SearchRequest{Title: "  Inception ", Genre: "", ActorName: "DiCaprio"})

		assert.Equal(t, []movie.Criterion{
			{Field: movie.FieldTitle, Term: "inception"},
			{Field: movie.FieldActorName, Term: "dicaprio"},
		}, p.Criteria())
		assert.Equal(t, "title=inception&actorName=dicaprio", p.Key())
		assert.False(t, p.IsEmpty())
	})

	t.Run("key escapes separators", func(t *testing.T) {
		tricky := movie.BuildPredicate(movie.SearchRequest{Title: "a&genre=b"})
		plain := movie.BuildPredicate(movie.SearchRequest{Title: "a", Genre: "b"})

		assert.NotEqual(t, plain.Key(), tricky.Key())
	})

	t.Run("blank request builds an empty predicate", func(t *testing.T) {
		p := movie.BuildPredicate(movie.SearchRequest{Title: "  "})

		assert.True(t, p.IsEmpty())
		assert.Empty(t, p.Criteria())
	})

	t.Run("criteria are not shared with callers", func(t *testing.T) {
		p := movie.BuildPredicate(movie.SearchRequest{Title: "matrix"})

		c := p.Criteria()
		c[0].Term = "changed"

		assert.Equal(t, "matrix", p.Criteria()[0].Term)
	})
}

func TestPredicate_Matches(t *testing.T) {
	inception := movie.Movie{ID: 8, Title: "Inception", Genre: "Sci-Fi"}
	forrest := movie.Movie{ID: 1, Title: "Forrest Gump", Genre: "Drama"}
	forrestCast := []movie.Actor{{ID: 1, Name: "Tom Hanks"}, {ID: 7, Name: "Robin Wright"}, {ID: 8, Name: "Gary Sinise"}}

	tests := []struct {
		name   string
		req    movie.SearchRequest
		movie  movie.Movie
		actors []movie.Actor
		want   bool
	}{
		{name: "title substring any case", req: movie.SearchRequest{Title: "INCEP"}, movie: inception, want: true},
		{name: "title no match", req: movie.SearchRequest{Title: "zzz-no-match"}, movie: inception, want: false},
		{name: "genre match", req: movie.SearchRequest{Genre: "sci"}, movie: inception, want: true},
		{name: "conjunction fails on genre", req: movie.SearchRequest{Title: "inception", Genre: "comedy"}, movie: inception, want: false},
		{name: "conjunction holds", req: movie.SearchRequest{Title: "inception", Genre: "sci-fi"}, movie: inception, want: true},
		{name: "any actor suffices", req: movie.SearchRequest{ActorName: "hanks"}, movie: forrest, actors: forrestCast, want: true},
		{name: "no linked actors", req: movie.SearchRequest{ActorName: "hanks"}, movie: inception, want: false},
		{name: "actor and title", req: movie.SearchRequest{Title: "gump", ActorName: "sinise"}, movie: forrest, actors: forrestCast, want: true},
		{name: "wildcard characters are literal", req: movie.SearchRequest{Title: "%"}, movie: forrest, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := movie.BuildPredicate(tt.req).Matches(tt.movie, tt.actors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "title", movie.FieldTitle.String())
	assert.Equal(t, "genre", movie.FieldGenre.String())
	assert.Equal(t, "actorName", movie.FieldActorName.String())
	assert.Equal(t, "unknown", movie.Field(9).String())
}
