// nolint: funlen
package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moviesearch/movie"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Search(ctx context.Context, req movie.SearchRequest) ([]movie.MovieDTO, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]movie.MovieDTO), args.Error(1)
}

func (m *MockMovieService) Browse(ctx context.Context, req movie.PageRequest) (movie.PagedResult[movie.MovieDTO], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(movie.PagedResult[movie.MovieDTO]), args.Error(1)
}

var gump = movie.MovieDTO{
	ID:          1,
	Title:       "Forrest Gump",
	Description: "Alabama.",
	ReleaseYear: 1994,
	Genre:       "Drama",
	Actors:      []movie.ActorDTO{{ID: 1, Name: "Tom Hanks", DateOfBirth: "1956-07-09"}},
}

func newSearchRequest(body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/api/movies/search", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestSearchMovies(t *testing.T) {
	t.Run("should return 200 with matching movies", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Search", mock.Anything, movie.SearchRequest{Title: "gump", ActorName: "Hanks"}).
			Return([]movie.MovieDTO{gump}, nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"title":"gump","actorName":"Hanks"}`))

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "200", resp.Code)
		assert.Equal(t, "OK", resp.Message)
		var result struct {
			Data []movie.MovieDTO `json:"data"`
		}
		decodeAPIResult(t, resp.Result, &result)
		assert.Equal(t, []movie.MovieDTO{gump}, result.Data)
		assert.Contains(t, recorder.Body.String(), `"dateOfBirth":"1956-07-09"`)
		assert.Equal(t, float64(1), testutil.ToFloat64(server.Metrics.Requests.WithLabelValues("search", "ok")))
		svc.AssertExpectations(t)
	})

	t.Run("should return an empty list when nothing matches", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Search", mock.Anything, movie.SearchRequest{Genre: "western"}).
			Return([]movie.MovieDTO{}, nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"genre":"western"}`))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"data":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 when no criterion is given", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Search", mock.Anything, movie.SearchRequest{Title: "  "}).
			Return([]movie.MovieDTO(nil), movie.ErrNoSearchCriteria).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"title":"  "}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		assert.Equal(t, movie.ErrNoSearchCriteria.Message, resp.Message)
		assert.Nil(t, resp.Result)
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 when JSON is malformed", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"title": "x", invalid json`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("should hide store failures behind a generic 500", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Search", mock.Anything, movie.SearchRequest{Title: "gump"}).
			Return([]movie.MovieDTO(nil), errors.New("pq: connection refused")).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"title":"gump"}`))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "Internal server error", resp.Message)
		assert.NotContains(t, recorder.Body.String(), "connection refused")
		assert.Equal(t, float64(1), testutil.ToFloat64(server.Metrics.Requests.WithLabelValues("search", "error")))
	})

	t.Run("should return 501 without a movie service", func(t *testing.T) {
		server := newTestServer(t, nil)
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, newSearchRequest(`{"title":"gump"}`))

		assert.Equal(t, http.StatusNotImplemented, recorder.Code)
	})
}

func TestBrowseMovies(t *testing.T) {
	page := movie.NewPagedResult([]movie.MovieDTO{gump}, 15, movie.PageRequest{Page: 2, PageSize: 5})

	tests := []struct {
		name  string
		query string
		want  movie.PageRequest
	}{
		{
			name:  "defaults when no parameters are given",
			query: "",
			want:  movie.PageRequest{Page: 1, PageSize: 50, OrderBy: movie.OrderByID},
		},
		{
			name:  "explicit parameters are passed through",
			query: "?page=2&pageSize=5&orderBy=1",
			want:  movie.PageRequest{Page: 2, PageSize: 5, OrderBy: movie.OrderByTitle},
		},
		{
			name:  "out of range sizes are left for the service to clamp",
			query: "?page=0&pageSize=150&orderBy=2",
			want:  movie.PageRequest{Page: 0, PageSize: 150, OrderBy: movie.OrderByGenre},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newTestServer(t, svc)
			svc.On("Browse", mock.Anything, tt.want).Return(page, nil).Once()
			recorder := httptest.NewRecorder()

			server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/movies"+tt.query, nil))

			require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
			resp := decodeAPIResponse(t, recorder)
			var result movie.PagedResult[movie.MovieDTO]
			decodeAPIResult(t, resp.Result, &result)
			assert.Equal(t, page, result)
			svc.AssertExpectations(t)
		})
	}

	t.Run("envelope uses camelCase keys", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Browse", mock.Anything, mock.Anything).Return(page, nil).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/movies?page=2&pageSize=5", nil))

		body := recorder.Body.String()
		for _, key := range []string{`"items"`, `"totalCount":15`, `"page":2`, `"pageSize":5`, `"totalPages":3`, `"hasPreviousPage":true`, `"hasNextPage":true`} {
			assert.Contains(t, body, key)
		}
	})

	badRequests := []struct {
		name  string
		query string
	}{
		{name: "orderBy outside the enumeration", query: "?orderBy=5"},
		{name: "negative orderBy", query: "?orderBy=-1"},
		{name: "non-numeric page", query: "?page=abc"},
		{name: "non-numeric pageSize", query: "?pageSize=ten"},
	}

	for _, tt := range badRequests {
		t.Run("should return 400 for "+tt.name, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newTestServer(t, svc)
			recorder := httptest.NewRecorder()

			server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/movies"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			resp := decodeAPIResponse(t, recorder)
			assert.Equal(t, "100010", resp.Code)
			svc.AssertNotCalled(t, "Browse", mock.Anything, mock.Anything)
		})
	}

	t.Run("should return 500 when the store fails", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newTestServer(t, svc)
		svc.On("Browse", mock.Anything, mock.Anything).
			Return(movie.PagedResult[movie.MovieDTO]{}, context.DeadlineExceeded).Once()
		recorder := httptest.NewRecorder()

		server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, float64(1), testutil.ToFloat64(server.Metrics.Requests.WithLabelValues("browse", "error")))
	})
}
