package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviesearch/httpserver"
	"moviesearch/movie"
	"moviesearch/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RateLimit = 100
	return cfg
}

func newTestServer(t testing.TB, svc movie.Service) *httpserver.Server {
	t.Helper()
	server, err := httpserver.New(
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(svc),
	)
	require.NoError(t, err)
	return server
}

func decodeAPIResponse(t testing.TB, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), "body: %s", recorder.Body.String())
	return resp
}

// decodeAPIResult re-decodes the generic result field into target.
func decodeAPIResult(t testing.TB, result interface{}, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}
