package app_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTMDb answers like TMDb for a handful of paths and 404s otherwise
func fakeTMDb(t *testing.T, seen *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tmdb-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		if seen != nil {
			*seen = append(*seen, r.URL.Path+"?page="+r.URL.Query().Get("page"))
		}

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/movie/popular", "/tv/top_rated", "/person/popular":
			w.Write([]byte(`{"page":` + r.URL.Query().Get("page") + `,"results":[{"id":1}]}`))
		case "/movie/550":
			w.Write([]byte(`{"id":550,"title":"Fight Club"}`))
		case "/tv/1399/credits":
			w.Write([]byte(`{"id":1399,"cast":[],"crew":[]}`))
		case "/movie/550/videos":
			w.Write([]byte(`{"results":[{"key":"t1","site":"YouTube","type":"Teaser"},{"key":"tr1","site":"YouTube","type":"Trailer"}]}`))
		case "/tv/1399/videos":
			w.Write([]byte(`{"results":[]}`))
		case "/person/287/combined_credits":
			w.Write([]byte(`{"cast":[{"id":550}],"crew":[{"id":1}]}`))
		case "/person/288/combined_credits":
			w.Write([]byte(`{"crew":[]}`))
		case "/search/multi":
			assert.Equal(t, "fight club", r.URL.Query().Get("query"))
			w.Write([]byte(`{"page":1,"results":[{"id":550,"media_type":"movie"}],"total_results":1}`))
		case "/movie/1":
			w.Write([]byte(`<html>not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		}
	}
}

func TestMedia_RawRoutes(t *testing.T) {
	var seen []string
	s := newTestServer(t, fakeTMDb(t, &seen))

	w := s.do(http.MethodGet, "/api/movies/popular?page=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":3,"results":[{"id":1}]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/tv/top-rated?page=", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":1,"results":[{"id":1}]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/people/popular", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/movies/550/details", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":550,"title":"Fight Club"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/tv/1399/credits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1399,"cast":[],"crew":[]}`, w.Body.String())

	assert.Equal(t, []string{
		"/movie/popular?page=3",
		"/tv/top_rated?page=1",
		"/person/popular?page=1",
		"/movie/550?page=",
		"/tv/1399/credits?page=",
	}, seen)
}

func TestMedia_Trailer(t *testing.T) {
	s := newTestServer(t, fakeTMDb(t, nil))

	w := s.do(http.MethodGet, "/api/movies/550/trailer", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"trailerKey":"tr1"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/tv/1399/trailer", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"trailerKey":null}`, w.Body.String())
}

func TestMedia_PersonCreditsAndSearch(t *testing.T) {
	s := newTestServer(t, fakeTMDb(t, nil))

	w := s.do(http.MethodGet, "/api/people/287/credits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":550}]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/people/288/credits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/search?q=fight+club", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":550,"media_type":"movie"}]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing search query", errorOf(t, w))
}

func TestMedia_UpstreamFailures(t *testing.T) {
	s := newTestServer(t, fakeTMDb(t, nil))

	tests := []struct {
		path    string
		wantErr string
	}{
		{"/api/movies/404/details", "Failed to fetch movie details"},
		{"/api/tv/404/details", "Failed to fetch TV show details"},
		{"/api/people/404/details", "Failed to fetch person details"},
		{"/api/movies/404/trailer", "Failed to fetch trailer"},
		{"/api/people/404/credits", "Failed to fetch person credits"},
		{"/api/movies/404/credits", "Failed to fetch data from TMDb"},
		{"/api/tv/popular", "Failed to fetch data from TMDb"},
		{"/api/movies/1/details", "Failed to fetch movie details"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "", nil)
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, tt.wantErr, errorOf(t, w))
			assert.NotContains(t, w.Body.String(), "could not be found")
		})
	}
}

func TestMedia_UpstreamDown(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/search?q=x", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to fetch search results", errorOf(t, w))
}

func TestMedia_InvalidID(t *testing.T) {
	s := newTestServer(t, fakeTMDb(t, nil))

	for _, path := range []string{
		"/api/movies/abc/details",
		"/api/tv/0/trailer",
		"/api/people/-5/credits",
		"/api/movies/1.5/credits",
	} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "Invalid ID", errorOf(t, w))
	}
}
