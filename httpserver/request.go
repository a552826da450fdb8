package httpserver

import (
	"errors"
	"fmt"

	"moviesearch/errs"
	"moviesearch/movie"

	"github.com/labstack/echo/v4"
)

type SearchMoviesRequest struct {
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	ActorName string `json:"actorName"`
}

func (r SearchMoviesRequest) ToSearchRequest() movie.SearchRequest {
	return movie.SearchRequest{
		Title:     r.Title,
		Genre:     r.Genre,
		ActorName: r.ActorName,
	}
}

// BrowseMoviesRequest is bound from the query string. Out-of-range page
// and pageSize values are clamped later; orderBy must be 0, 1 or 2.
type BrowseMoviesRequest struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"pageSize" query:"pageSize"`
	OrderBy  int `json:"orderBy" query:"orderBy" validate:"oneof=0 1 2"`
}

func newBrowseMoviesRequest() BrowseMoviesRequest {
	return BrowseMoviesRequest{
		Page:     1,
		PageSize: movie.DefaultPageSize,
		OrderBy:  int(movie.OrderByID),
	}
}

func (r BrowseMoviesRequest) ToPageRequest() movie.PageRequest {
	return movie.PageRequest{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  movie.OrderBy(r.OrderBy),
	}
}

// bindRequest binds and validates req. Binding failures, such as malformed
// JSON or a non-numeric query value, become EINVALID errors.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return errs.Errorf(errs.EINVALID, "invalid request: %s", fmt.Sprint(he.Message))
		}
		return errs.Errorf(errs.EINVALID, "invalid request")
	}
	return c.Validate(req)
}
