package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) RegisterOpsRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
	s.Router.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive
// @Tags health
// @Success 200 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	status := "OK"
	if s.MovieService == nil {
		status = "NO_CATALOG"
	}
	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": status,
	})
}
