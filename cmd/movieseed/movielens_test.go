package main

import (
	"archive/zip"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviesearch/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,"American President, The (1995)",Comedy|Drama|Romance
x,Broken row,Drama
3,Hyena Road,(no genres listed)
4,Heat (1995) ,Action|Crime|Thriller
`

func TestReadMovies(t *testing.T) {
	t.Run("rows become catalog movies", func(t *testing.T) {
		movies, err := readMovies(strings.NewReader(moviesCSV), 0)

		require.NoError(t, err)
		assert.Equal(t, []movie.Movie{
			{ID: 1, Title: "Toy Story", ReleaseYear: 1995, Genre: "Adventure"},
			{ID: 2, Title: "American President, The", ReleaseYear: 1995, Genre: "Comedy"},
			{ID: 3, Title: "Hyena Road", Genre: "Unknown"},
			{ID: 4, Title: "Heat", ReleaseYear: 1995, Genre: "Action"},
		}, movies)
	})

	t.Run("limit counts imported rows only", func(t *testing.T) {
		movies, err := readMovies(strings.NewReader(moviesCSV), 3)

		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, 3, movies[2].ID)
	})

	t.Run("columns may appear in any order", func(t *testing.T) {
		movies, err := readMovies(strings.NewReader("genres,title,movieId\nDrama|War,Glory (1989),1172\n"), 0)

		require.NoError(t, err)
		assert.Equal(t, []movie.Movie{{ID: 1172, Title: "Glory", ReleaseYear: 1989, Genre: "Drama"}}, movies)
	})

	t.Run("missing columns are rejected", func(t *testing.T) {
		_, err := readMovies(strings.NewReader("movieId,title\n1,Heat (1995)\n"), 0)

		assert.EqualError(t, err, "missing required columns in csv header")
	})
}

func TestSplitTitleYear(t *testing.T) {
	tests := []struct {
		raw   string
		title string
		year  int
	}{
		{raw: "Jumanji (1995)", title: "Jumanji", year: 1995},
		{raw: "Babylon 5", title: "Babylon 5", year: 0},
		{raw: "Ready Player One (2018)", title: "Ready Player One", year: 2018},
		{raw: "City of Lost Children, The (Cité des enfants perdus, La) (1995)", title: "City of Lost Children, The (Cité des enfants perdus, La)", year: 1995},
		{raw: "(1995)", title: "(1995)", year: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, year := splitTitleYear(tt.raw)

			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestExtractMoviesCSV(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "dataset.zip")

	out, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for _, name := range []string{"ml-latest-small/ratings.csv", "ml-latest-small/movies.csv"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		require.NoError(t, csv.NewWriter(w).WriteAll([][]string{{"movieId", "title", "genres"}, {"1", name, "Drama"}}))
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	path, err := extractMoviesCSV(zipPath, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ml-latest-small/movies.csv")
	assert.NotContains(t, string(data), "ratings")

	_, err = extractMoviesCSV(zipPath+".missing", dir)
	assert.Error(t, err)
}
