package main

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"moviesearch/movie"

	"github.com/spf13/cobra"
)

const (
	defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
	unknownGenre        = "Unknown"
	noGenres            = "(no genres listed)"
)

var yearSuffix = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)$`)

func newMovieLensCmd() *cobra.Command {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "movielens",
		Short: "Import movies from the MovieLens dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			if csvPath == "" {
				path, cleanup, err := downloadAndExtract(zipURL)
				if err != nil {
					return fmt.Errorf("failed to download dataset: %w", err)
				}
				defer cleanup()
				csvPath = path
			}

			file, err := os.Open(csvPath)
			if err != nil {
				return err
			}
			defer file.Close()

			movies, err := readMovies(file, limit)
			if err != nil {
				return err
			}

			if err := repo.ImportCatalog(cmd.Context(), movies, nil, nil); err != nil {
				return err
			}

			slog.Info("import completed", "rows", len(movies))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	cmd.Flags().StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")

	return cmd
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if filepath.Base(file.Name) != "movies.csv" {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, "movies.csv")
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

// readMovies converts MovieLens rows into catalog movies. Rows with a
// non-numeric id are skipped.
func readMovies(r io.Reader, limit int) ([]movie.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := parseMovieCSVHeader(reader)
	if err != nil {
		return nil, err
	}

	var movies []movie.Movie
	for limit <= 0 || len(movies) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		m, ok := parseMovieRecord(record, idx)
		if !ok {
			continue
		}
		movies = append(movies, m)
	}

	return movies, nil
}

type columns struct {
	movieID, title, genres int
}

func parseMovieCSVHeader(reader *csv.Reader) (columns, error) {
	header, err := reader.Read()
	if err != nil {
		return columns{}, err
	}

	idx := columns{movieID: -1, title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idx.movieID = i
		case "title":
			idx.title = i
		case "genres":
			idx.genres = i
		}
	}
	if idx.movieID == -1 || idx.title == -1 || idx.genres == -1 {
		return columns{}, errors.New("missing required columns in csv header")
	}

	return idx, nil
}

func parseMovieRecord(record []string, idx columns) (movie.Movie, bool) {
	if idx.movieID >= len(record) || idx.title >= len(record) || idx.genres >= len(record) {
		return movie.Movie{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(record[idx.movieID]))
	if err != nil {
		return movie.Movie{}, false
	}

	title, year := splitTitleYear(strings.TrimSpace(record[idx.title]))
	return movie.Movie{
		ID:          id,
		Title:       title,
		ReleaseYear: year,
		Genre:       firstGenre(record[idx.genres]),
	}, true
}

// splitTitleYear turns "Heat (1995)" into ("Heat", 1995). Titles without a
// trailing year keep a zero year.
func splitTitleYear(raw string) (string, int) {
	match := yearSuffix.FindStringSubmatch(raw)
	if match == nil {
		return raw, 0
	}
	year, _ := strconv.Atoi(match[2])
	return match[1], year
}

func firstGenre(raw string) string {
	genre, _, _ := strings.Cut(strings.TrimSpace(raw), "|")
	genre = strings.TrimSpace(genre)
	if genre == "" || genre == noGenres {
		return unknownGenre
	}
	return genre
}
