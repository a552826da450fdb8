package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	t.Run("reports OK with a catalog", func(t *testing.T) {
		server := newTestServer(t, new(MockMovieService))

		response := makeRequest(server, http.MethodGet, "/healthcheck", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"code":"200"`)
		assert.Contains(t, response.Body.String(), `"message":"OK"`)
		assert.Contains(t, response.Body.String(), `"status":"OK"`)
	})

	t.Run("flags a missing catalog", func(t *testing.T) {
		server := newTestServer(t, nil)

		response := makeRequest(server, http.MethodGet, "/healthcheck", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"status":"NO_CATALOG"`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, new(MockMovieService))
	server.Metrics.ObserveSearchResults(3)

	response := makeRequest(server, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "moviesearch_search_results_count 1")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	server := newTestServer(t, nil)

	response := makeRequest(server, http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, response.Code)
	resp := decodeAPIResponse(t, response)
	assert.Equal(t, "100404", resp.Code)
	assert.Equal(t, "Not Found", resp.Message)
}
