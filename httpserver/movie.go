package httpserver

import (
	"net/http"
	"time"

	"moviesearch/errs"
	"moviesearch/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.POST("/movies/search", s.handleSearchMovies)
	g.GET("/movies", s.handleBrowseMovies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Case-insensitive substring search by title, genre and actor name. All provided criteria must match. At most 1000 movies are returned, ordered by id.
// @Tags movies
// @Accept json
// @Produce json
// @Param request body SearchMoviesRequest true "Search criteria, at least one required"
// @Success 200 {object} APIResponse{result=object{data=[]movie.MovieDTO}}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies/search [post]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchMoviesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	started := time.Now()
	results, err := s.MovieService.Search(c.Request().Context(), req.ToSearchRequest())
	s.Metrics.ObserveRequest(metrics.OpSearch, started, err)
	if err != nil {
		return err
	}
	s.Metrics.ObserveSearchResults(len(results))

	return writeList(c, http.StatusOK, results)
}

// handleBrowseMovies godoc
// @Summary Browse Movies
// @Description Page through the whole catalog ordered by id (0), title (1) or genre (2).
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param pageSize query int false "Page size (1-100), default 50"
// @Param orderBy query int false "0 id, 1 title, 2 genre"
// @Success 200 {object} APIResponse{result=movie.PagedResult[movie.MovieDTO]}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleBrowseMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	req := newBrowseMoviesRequest()
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	started := time.Now()
	page, err := s.MovieService.Browse(c.Request().Context(), req.ToPageRequest())
	s.Metrics.ObserveRequest(metrics.OpBrowse, started, err)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, page)
}
